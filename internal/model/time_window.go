package model

import "gorm.io/gorm"

// TimeWindow mentor_time_windows table: one recurring weekly availability interval.
// StartTime/EndTime are TIME columns carried as "HH:MM:SS" strings.
type TimeWindow struct {
	TimeWindowID string `gorm:"type:uuid;primaryKey"                           json:"time_window_id"`
	MentorID     string `gorm:"type:uuid;not null;index:idx_windows_mentor_day" json:"mentor_id"`
	DayOfWeek    int    `gorm:"type:smallint;not null;index:idx_windows_mentor_day" json:"day_of_week"` // 0 = Monday
	StartTime    string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime      string `gorm:"type:time;not null"                             json:"end_time"`
	VersionedModel

	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID" json:"-"`
}

// TableName table name
func (TimeWindow) TableName() string { return "mentor_time_windows" }

// BeforeCreate assigns the primary key.
func (w *TimeWindow) BeforeCreate(_ *gorm.DB) error {
	newID(&w.TimeWindowID)
	return nil
}
