package domain

type UserBookingStats struct {
	Upcoming  int64 `json:"upcoming"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

type SystemStats struct {
	TotalUsers       int64 `json:"total_users"`
	ActiveBookings   int64 `json:"active_bookings"`
	PendingApprovals int64 `json:"pending_approvals"`
	TotalResources   int64 `json:"total_resources"`
}
