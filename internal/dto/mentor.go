package dto

// ── Mentor ──

// CreateMentorRequest register a mentor
type CreateMentorRequest struct {
	ID            string  `json:"-"` // caller's token id; empty lets the store assign one
	TelegramID    string  `json:"telegram_id"   binding:"required,max=64"`
	Name          string  `json:"name"          binding:"required,max=255"`
	Info          string  `json:"info"          binding:"required"`
	Specification *string `json:"specification"`
}

// UpdateMentorInfoRequest replace the markdown bio
type UpdateMentorInfoRequest struct {
	Info string `json:"info" binding:"required"`
}

// SyncMentorRequest pull profile fields from the profile service
type SyncMentorRequest struct {
	ExternalUserID string `json:"external_user_id" binding:"required"`
}

// MentorSearchRequest list filters; at most one is applied, name first
type MentorSearchRequest struct {
	Name          string `form:"name"`
	Specification string `form:"specification"`
}

// MentorResponse mentor details
type MentorResponse struct {
	ID                string  `json:"id"`
	TelegramID        string  `json:"telegram_id"`
	Name              string  `json:"name"`
	Info              string  `json:"info"`
	About             *string `json:"about,omitempty"`
	Specification     *string `json:"specification,omitempty"`
	Role              *string `json:"role,omitempty"`
	ExperiencePeriods *string `json:"experience_periods,omitempty"`
	Hackathons        *string `json:"hackathons,omitempty"`
	Work              *string `json:"work,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// PendingCountResponse pending requests split by kind
type PendingCountResponse struct {
	CallRequests    int64 `json:"call_requests"`
	MessageRequests int64 `json:"message_requests"`
}
