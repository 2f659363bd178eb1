package model

import "gorm.io/gorm"

// Mentor mentors table
type Mentor struct {
	MentorID          string  `gorm:"type:uuid;primaryKey"              json:"mentor_id"`
	TelegramID        string  `gorm:"type:varchar(64);not null;unique"  json:"telegram_id"`
	Name              string  `gorm:"type:varchar(255);not null"        json:"name"`
	Info              string  `gorm:"type:text;not null"                json:"info"` // markdown bio
	About             *string `gorm:"type:text"                         json:"about,omitempty"`
	Specification     *string `gorm:"type:text"                         json:"specification,omitempty"`
	Role              *string `gorm:"type:text"                         json:"role,omitempty"`
	ExperiencePeriods *string `gorm:"type:text"                         json:"experience_periods,omitempty"`
	Hackathons        *string `gorm:"type:text"                         json:"hackathons,omitempty"`
	Work              *string `gorm:"type:text"                         json:"work,omitempty"`
	BaseModel
}

// TableName table name
func (Mentor) TableName() string { return "mentors" }

// BeforeCreate assigns the primary key.
func (m *Mentor) BeforeCreate(_ *gorm.DB) error {
	newID(&m.MentorID)
	return nil
}
