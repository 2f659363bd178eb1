package dto

import "time"

// ── Request ──

// SubmitRequest a student's call or message request
type SubmitRequest struct {
	MentorID    string     `json:"mentor_id"   binding:"required,uuid"`
	CallType    *int       `json:"call_type"   binding:"required,oneof=0 1"` // 0 call, 1 message
	Description string     `json:"description" binding:"required,max=4000"`
	CallTime    *time.Time `json:"call_time"` // required for calls
}

// RespondRequest mentor decision on a pending request
type RespondRequest struct {
	Response *int `json:"response" binding:"required,oneof=1 -1"` // 1 accept, -1 reject
}

// RequestResponse request details
type RequestResponse struct {
	ID          string  `json:"id"`
	CallType    int     `json:"call_type"`
	MentorID    string  `json:"mentor_id"`
	GuestID     string  `json:"guest_id"`
	Description string  `json:"description"`
	CallTime    *string `json:"call_time,omitempty"`
	Response    int     `json:"response"`
	Status      string  `json:"status"`
	TimeSent    string  `json:"time_sent"`
}
