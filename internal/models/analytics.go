package models

// Wire types for the employer analytics endpoint. Field names are the
// contract consumed by the dashboard charts.

type TimePoint struct {
	Date  string `json:"date"` // ISO-8601 date
	Count int64  `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type TopJob struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int64  `json:"count"`
}

type Funnel struct {
	Total      int64   `json:"total"`
	Pending    int64   `json:"pending"`
	Reviewed   int64   `json:"reviewed"`
	Accepted   int64   `json:"accepted"`
	Rejected   int64   `json:"rejected"`
	ReviewRate float64 `json:"review_rate"`
	AcceptRate float64 `json:"accept_rate"`
}

type EmployerAnalytics struct {
	StatusCounts         StatusCounts     `json:"status_counts"`
	JobsByType           map[string]int64 `json:"jobs_by_type"`
	ApplicationsOverTime []TimePoint      `json:"applications_over_time"`
	Funnel               Funnel           `json:"funnel"`
	LocationCounts       []LocationCount  `json:"location_counts"`
	TopJobs              []TopJob         `json:"top_jobs"`
}
