package service

import (
	"fmt"
	"time"

	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/model"
	"github.com/mlcinall/mentor-service/internal/slot"
)

const (
	timestampLayout = time.RFC3339
	callTimeLayout  = "2006-01-02T15:04:05"
)

// toSlotWindow parses a stored window into engine form.
func toSlotWindow(w *model.TimeWindow) (slot.Window, error) {
	start, err := slot.ParseClock(w.StartTime)
	if err != nil {
		return slot.Window{}, fmt.Errorf("window %s start: %w", w.TimeWindowID, err)
	}
	end, err := slot.ParseClock(w.EndTime)
	if err != nil {
		return slot.Window{}, fmt.Errorf("window %s end: %w", w.TimeWindowID, err)
	}
	return slot.Window{Day: w.DayOfWeek, Start: start, End: end}, nil
}

func newWindowModel(mentorID string, w slot.Window) model.TimeWindow {
	return model.TimeWindow{
		MentorID:  mentorID,
		DayOfWeek: w.Day,
		StartTime: w.Start.String(),
		EndTime:   w.End.String(),
	}
}

// wallClock drops the zone of t, keeping the clock reading the caller sent.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func toMentorResponse(m *model.Mentor) *dto.MentorResponse {
	return &dto.MentorResponse{
		ID:                m.MentorID,
		TelegramID:        m.TelegramID,
		Name:              m.Name,
		Info:              m.Info,
		About:             m.About,
		Specification:     m.Specification,
		Role:              m.Role,
		ExperiencePeriods: m.ExperiencePeriods,
		Hackathons:        m.Hackathons,
		Work:              m.Work,
		CreatedAt:         m.CreatedAt.Format(timestampLayout),
		UpdatedAt:         m.UpdatedAt.Format(timestampLayout),
	}
}

func toMentorResponses(mentors []model.Mentor) []dto.MentorResponse {
	result := make([]dto.MentorResponse, 0, len(mentors))
	for i := range mentors {
		result = append(result, *toMentorResponse(&mentors[i]))
	}
	return result
}

func toWindowResponse(w *model.TimeWindow) dto.TimeWindowResponse {
	return dto.TimeWindowResponse{
		ID:        w.TimeWindowID,
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
	}
}

func toRequestResponse(r *model.Request) *dto.RequestResponse {
	resp := &dto.RequestResponse{
		ID:          r.RequestID,
		CallType:    int(r.CallType),
		MentorID:    r.MentorID,
		GuestID:     r.GuestID,
		Description: r.Description,
		Response:    int(r.Response),
		Status:      r.Response.String(),
		TimeSent:    r.TimeSent.Format(timestampLayout),
	}
	if r.CallTime != nil {
		s := r.CallTime.Format(callTimeLayout)
		resp.CallTime = &s
	}
	return resp
}

func toRequestResponses(requests []model.Request) []dto.RequestResponse {
	result := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *toRequestResponse(&requests[i]))
	}
	return result
}
