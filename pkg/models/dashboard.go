package models

// DashboardSummary holds the headline counts for the dashboard screen.
type DashboardSummary struct {
	Posts       int `json:"posts"`
	Users       int `json:"users"`
	ActiveUsers int `json:"active_users"`
}

// SeriesPoint is one day's bucket in the monthly activity series.
type SeriesPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Posts int    `json:"posts"`
	Users int    `json:"users"`
}
