package domain

// Dashboard is a student's hostel-scoped view: at most one active order plus finished ones.
type Dashboard struct {
	ActiveOrder *LaundryOrder  `json:"activeOrder"`
	History     []LaundryOrder `json:"history"`
}

// EmptyDashboard is returned when nothing matches.
func EmptyDashboard() *Dashboard {
	return &Dashboard{ActiveOrder: nil, History: []LaundryOrder{}}
}

// PartitionDashboard splits orders, which must already be newest-first, into the newest
// active order and every non-active order. Older active orders are not surfaced.
func PartitionDashboard(orders []LaundryOrder) *Dashboard {
	view := EmptyDashboard()
	for i := range orders {
		order := orders[i]
		if order.Status.Active() {
			if view.ActiveOrder == nil {
				view.ActiveOrder = order.Clone()
			}
			continue
		}
		view.History = append(view.History, *order.Clone())
	}
	return view
}
