package dto

// FavoriteResponse one favorite mentor entry
type FavoriteResponse struct {
	ID        string          `json:"id"`
	MentorID  string          `json:"mentor_id"`
	Mentor    *MentorResponse `json:"mentor,omitempty"`
	CreatedAt string          `json:"created_at"`
}
