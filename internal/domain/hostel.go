package domain

// Hostel is one of the fixed residential-block codes.
type Hostel string

const (
	HostelPIA   Hostel = "PI-A"
	HostelIBNA  Hostel = "IBN-A"
	HostelNGHA  Hostel = "NGH-A"
	HostelPIB   Hostel = "PI-B"
	HostelIBNB  Hostel = "IBN-B"
	HostelNGHB  Hostel = "NGH-B"
	HostelPIC   Hostel = "PI-C"
	HostelIBNC  Hostel = "IBN-C"
	HostelVASCO Hostel = "VASCO"
)

// HostelAll is the list filter sentinel meaning "every hostel".
const HostelAll = "ALL"

var hostels = []Hostel{
	HostelPIA, HostelIBNA, HostelNGHA,
	HostelPIB, HostelIBNB, HostelNGHB,
	HostelPIC, HostelIBNC, HostelVASCO,
}

// Hostels returns the fixed enumeration in display order.
func Hostels() []Hostel {
	return append([]Hostel(nil), hostels...)
}

// Valid reports whether h is one of the known codes.
func (h Hostel) Valid() bool {
	for _, candidate := range hostels {
		if candidate == h {
			return true
		}
	}
	return false
}
