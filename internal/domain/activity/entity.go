package activity

import "time"

// JobStatusCompleted is the only job status that counts as a wash.
const JobStatusCompleted = "completed"

// OneWash - a single billed-per-occurrence wash
type OneWash struct {
	ID        string
	TenantID  string
	WorkerID  string
	CreatedAt time.Time
	IsDeleted bool
}

// Job - one visit generated from a customer subscription
type Job struct {
	ID            string
	TenantID      string
	WorkerID      string
	Status        string
	CompletedDate *time.Time
	IsDeleted     bool
}

// Aggregate - a worker's wash activity for one month
type Aggregate struct {
	WorkerID          string      `json:"worker_id"`
	Month             int         `json:"month"`
	Year              int         `json:"year"`
	OneWashCount      int         `json:"one_wash_count"`
	SubscriptionCount int         `json:"subscription_count"`
	TotalWashes       int         `json:"total_washes"`
	PresentDaysCount  int         `json:"present_days_count"`
	DailyCounts       map[int]int `json:"daily_counts"`
}
