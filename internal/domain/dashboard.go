package domain

import "time"

// DashboardMetrics are the three headline numbers on the admin dashboard,
// computed over events dated in the current month.
type DashboardMetrics struct {
	UpcomingEvents     int     `json:"upcoming_events"`
	TotalRegistrations int     `json:"total_registrations"`
	TotalRevenue       float64 `json:"total_revenue"`
}

// DashboardEventRow is one row of the dashboard event table.
type DashboardEventRow struct {
	EventID       string      `json:"event_id"`
	Name          string      `json:"name"`
	Date          time.Time   `json:"date"`
	Registrations int         `json:"registrations"`
	Revenue       float64     `json:"revenue"`
	Status        EventStatus `json:"status"`
}

// DashboardReport bundles the metrics with the event table.
// swagger:model DashboardReport
type DashboardReport struct {
	Metrics DashboardMetrics    `json:"metrics"`
	Events  []DashboardEventRow `json:"events"`
}
