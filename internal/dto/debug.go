package dto

// SetDateRequest overrides the clock's date half (ISO-8601).
type SetDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// SetTimeRequest overrides the clock's time half (24h "HH:MM").
type SetTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// ClockResponse reports the effective clock and any active override.
type ClockResponse struct {
	Now          string  `json:"now"`
	Today        string  `json:"today"`
	Timezone     string  `json:"timezone"`
	OverrideDate *string `json:"override_date,omitempty"`
	OverrideTime *string `json:"override_time,omitempty"`
}

// TriggerJobRequest fires one scheduler job by name.
type TriggerJobRequest struct {
	Job string `json:"job" binding:"required"`
}

// JobStateResponse is one scheduler job's observable state.
type JobStateResponse struct {
	Name      string  `json:"name"`
	Spec      string  `json:"spec"`
	Running   bool    `json:"running"`
	Runs      int64   `json:"runs"`
	Skips     int64   `json:"skips"`
	Failures  int64   `json:"failures"`
	LastRunAt *string `json:"last_run_at,omitempty"`
	LastError string  `json:"last_error,omitempty"`
}
