package model

import "gorm.io/gorm"

// FavoriteMentor favorite_mentors table
type FavoriteMentor struct {
	FavoriteID string `gorm:"type:uuid;primaryKey"                                  json:"favorite_id"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_mentor" json:"user_id"`
	MentorID   string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_mentor" json:"mentor_id"`
	BaseModel

	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID" json:"mentor,omitempty"`
}

// TableName table name
func (FavoriteMentor) TableName() string { return "favorite_mentors" }

// BeforeCreate assigns the primary key.
func (f *FavoriteMentor) BeforeCreate(_ *gorm.DB) error {
	newID(&f.FavoriteID)
	return nil
}
