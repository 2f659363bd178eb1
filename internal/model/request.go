package model

import (
	"time"

	"gorm.io/gorm"
)

// CallType kind of request
type CallType int

const (
	CallTypeCall    CallType = 0
	CallTypeMessage CallType = 1
)

// ResponseStatus mentor's answer to a request
type ResponseStatus int

const (
	ResponsePending   ResponseStatus = 0
	ResponseAccepted  ResponseStatus = 1
	ResponseRejected  ResponseStatus = -1
	ResponseCancelled ResponseStatus = 2
)

// Active reports whether a request in this status blocks its call time.
func (s ResponseStatus) Active() bool {
	return s == ResponsePending || s == ResponseAccepted
}

// String status name
func (s ResponseStatus) String() string {
	switch s {
	case ResponsePending:
		return "pending"
	case ResponseAccepted:
		return "accepted"
	case ResponseRejected:
		return "rejected"
	case ResponseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Request requests table. CallTime is a wall-clock timestamp without zone and
// is set only for calls. The partial unique index keeps at most one active
// request per mentor and call time.
type Request struct {
	RequestID   string         `gorm:"type:uuid;primaryKey"                                                                    json:"request_id"`
	CallType    CallType       `gorm:"type:smallint;not null"                                                                  json:"call_type"`
	MentorID    string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_requests_active_call,where:response BETWEEN 0 AND 1" json:"mentor_id"`
	GuestID     string         `gorm:"type:uuid;not null;index"                                                                json:"guest_id"`
	Description string         `gorm:"type:text;not null"                                                                      json:"description"`
	CallTime    *time.Time     `gorm:"type:timestamp;uniqueIndex:idx_requests_active_call,where:response BETWEEN 0 AND 1" json:"call_time,omitempty"`
	Response    ResponseStatus `gorm:"type:smallint;not null;default:0"                                                        json:"response"`
	TimeSent    time.Time      `gorm:"type:timestamp;not null"                                                                 json:"time_sent"`
	BaseModel

	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID" json:"-"`
}

// TableName table name
func (Request) TableName() string { return "requests" }

// BeforeCreate assigns the primary key and send time.
func (r *Request) BeforeCreate(_ *gorm.DB) error {
	newID(&r.RequestID)
	if r.TimeSent.IsZero() {
		r.TimeSent = time.Now().UTC()
	}
	return nil
}
