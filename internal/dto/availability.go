package dto

// ── Availability ──

// PublishWindowRequest add a recurring weekly window
type PublishWindowRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"` // 0 = Monday
	StartTime string `json:"start_time"  binding:"required,clock"`       // "10:00" or "10:00:00"
	EndTime   string `json:"end_time"    binding:"required,clock"`
}

// PublishWindowResponse id of the created or extended window
type PublishWindowResponse struct {
	TimeWindowID string `json:"time_window_id"`
}

// CallableTimesRequest query for the callable instants of one weekday
type CallableTimesRequest struct {
	Day *int `form:"day" binding:"required,min=0,max=6"`
}

// TimeWindowResponse one availability window
type TimeWindowResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CallableTimesResponse 30-minute start times in window order
type CallableTimesResponse struct {
	Day   int      `json:"day"`
	Times []string `json:"times"`
}
