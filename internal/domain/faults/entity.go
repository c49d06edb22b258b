package faults

import "time"

// Fault represents a persisted record of a failed analysis attempt
type Fault struct {
	ID         int64     `json:"id"`
	AnalysisID string    `json:"analysis_id,omitempty"`
	Stage      string    `json:"stage"` // provider | parse | persist
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
