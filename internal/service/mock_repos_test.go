package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/model"
	"github.com/mlcinall/mentor-service/internal/repository"
	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
	"github.com/mlcinall/mentor-service/pkg/profile"
)

// ── Mock MentorRepository ──

type mockMentorRepo struct {
	mentors map[string]*model.Mentor
	seq     int
}

func newMockMentorRepo() *mockMentorRepo {
	return &mockMentorRepo{mentors: make(map[string]*model.Mentor)}
}

func (m *mockMentorRepo) Create(_ context.Context, mentor *model.Mentor) error {
	for id, existing := range m.mentors {
		if existing.TelegramID == mentor.TelegramID || id == mentor.MentorID {
			return gorm.ErrDuplicatedKey
		}
	}
	if mentor.MentorID == "" {
		m.seq++
		mentor.MentorID = fmt.Sprintf("mentor-%d", m.seq)
	}
	cp := *mentor
	m.mentors[mentor.MentorID] = &cp
	return nil
}

func (m *mockMentorRepo) GetByID(_ context.Context, id string) (*model.Mentor, error) {
	if mentor, ok := m.mentors[id]; ok {
		cp := *mentor
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) GetByTelegramID(_ context.Context, telegramID string) (*model.Mentor, error) {
	for _, mentor := range m.mentors {
		if mentor.TelegramID == telegramID {
			cp := *mentor
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) List(_ context.Context) ([]model.Mentor, error) {
	return m.filter(func(*model.Mentor) bool { return true }), nil
}

func (m *mockMentorRepo) SearchByName(_ context.Context, query string) ([]model.Mentor, error) {
	q := strings.ToLower(query)
	return m.filter(func(mentor *model.Mentor) bool {
		return strings.Contains(strings.ToLower(mentor.Name), q)
	}), nil
}

func (m *mockMentorRepo) SearchBySpecification(_ context.Context, query string) ([]model.Mentor, error) {
	q := strings.ToLower(query)
	return m.filter(func(mentor *model.Mentor) bool {
		return mentor.Specification != nil && strings.Contains(strings.ToLower(*mentor.Specification), q)
	}), nil
}

func (m *mockMentorRepo) filter(keep func(*model.Mentor) bool) []model.Mentor {
	var result []model.Mentor
	for _, mentor := range m.mentors {
		if keep(mentor) {
			result = append(result, *mentor)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (m *mockMentorRepo) UpdateInfo(_ context.Context, id, info string) error {
	mentor, ok := m.mentors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mentor.Info = info
	return nil
}

func (m *mockMentorRepo) UpdateProfile(_ context.Context, mentor *model.Mentor) error {
	stored, ok := m.mentors[mentor.MentorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for id, other := range m.mentors {
		if id != mentor.MentorID && other.TelegramID == mentor.TelegramID {
			return gorm.ErrDuplicatedKey
		}
	}
	stored.Name = mentor.Name
	stored.TelegramID = mentor.TelegramID
	stored.About = mentor.About
	stored.Specification = mentor.Specification
	return nil
}

// ── Mock TimeWindowRepository ──

type mockTimeWindowRepo struct {
	windows map[string]*model.TimeWindow
	seq     int
	// order of creation, which stands in for store order
	order []string
}

func newMockTimeWindowRepo() *mockTimeWindowRepo {
	return &mockTimeWindowRepo{windows: make(map[string]*model.TimeWindow)}
}

func (m *mockTimeWindowRepo) Create(_ context.Context, window *model.TimeWindow) error {
	if window.TimeWindowID == "" {
		m.seq++
		window.TimeWindowID = fmt.Sprintf("window-%d", m.seq)
	}
	if window.Version == 0 {
		window.Version = 1
	}
	cp := *window
	m.windows[window.TimeWindowID] = &cp
	m.order = append(m.order, window.TimeWindowID)
	return nil
}

func (m *mockTimeWindowRepo) GetByID(_ context.Context, id string) (*model.TimeWindow, error) {
	if w, ok := m.windows[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeWindowRepo) ListByMentor(_ context.Context, mentorID string) ([]model.TimeWindow, error) {
	result := m.collect(func(w *model.TimeWindow) bool { return w.MentorID == mentorID })
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockTimeWindowRepo) ListByMentorAndDay(_ context.Context, mentorID string, day int) ([]model.TimeWindow, error) {
	result := m.collect(func(w *model.TimeWindow) bool { return w.MentorID == mentorID && w.DayOfWeek == day })
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockTimeWindowRepo) collect(keep func(*model.TimeWindow) bool) []model.TimeWindow {
	var result []model.TimeWindow
	for _, id := range m.order {
		if w, ok := m.windows[id]; ok && keep(w) {
			result = append(result, *w)
		}
	}
	return result
}

func (m *mockTimeWindowRepo) Update(_ context.Context, window *model.TimeWindow) error {
	stored, ok := m.windows[window.TimeWindowID]
	if !ok || stored.Version != window.Version {
		return pkgerrors.ErrOptimisticLock
	}
	window.Version++
	cp := *window
	m.windows[window.TimeWindowID] = &cp
	return nil
}

func (m *mockTimeWindowRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.windows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.windows, id)
	return nil
}

func (m *mockTimeWindowRepo) Replace(ctx context.Context, window *model.TimeWindow, replacements []model.TimeWindow) error {
	stored, ok := m.windows[window.TimeWindowID]
	if !ok || stored.Version != window.Version {
		return pkgerrors.ErrOptimisticLock
	}
	delete(m.windows, window.TimeWindowID)
	for i := range replacements {
		if err := m.Create(ctx, &replacements[i]); err != nil {
			return err
		}
	}
	return nil
}

// snapshot lists one mentor's windows on a day as "HH:MM:SS-HH:MM:SS" strings.
func (m *mockTimeWindowRepo) snapshot(mentorID string, day int) []string {
	windows, _ := m.ListByMentorAndDay(context.Background(), mentorID, day)
	out := make([]string, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.StartTime+"-"+w.EndTime)
	}
	return out
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[string]*model.Request
	seq      int
	// createErr, when set, is returned by the next Create
	createErr error
	// updateErr, when set, is returned by every UpdateResponse
	updateErr error
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*model.Request)}
}

func (m *mockRequestRepo) Create(_ context.Context, request *model.Request) error {
	if err := m.createErr; err != nil {
		m.createErr = nil
		return err
	}
	if request.RequestID == "" {
		m.seq++
		request.RequestID = fmt.Sprintf("request-%d", m.seq)
	}
	if request.TimeSent.IsZero() {
		request.TimeSent = time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
	}
	cp := *request
	m.requests[request.RequestID] = &cp
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.Request, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) filter(keep func(*model.Request) bool) []model.Request {
	var result []model.Request
	for _, r := range m.requests {
		if keep(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TimeSent.Before(result[j].TimeSent) })
	return result
}

func (m *mockRequestRepo) ListPendingByMentor(_ context.Context, mentorID string) ([]model.Request, error) {
	return m.filter(func(r *model.Request) bool {
		return r.MentorID == mentorID && r.Response == model.ResponsePending
	}), nil
}

func (m *mockRequestRepo) ListByGuest(_ context.Context, guestID string) ([]model.Request, error) {
	return m.filter(func(r *model.Request) bool { return r.GuestID == guestID }), nil
}

func (m *mockRequestRepo) ListAcceptedCalls(_ context.Context, mentorID string) ([]model.Request, error) {
	return m.filter(func(r *model.Request) bool {
		return r.MentorID == mentorID && r.CallType == model.CallTypeCall &&
			r.Response == model.ResponseAccepted && r.CallTime != nil
	}), nil
}

func (m *mockRequestRepo) CountPendingByMentor(_ context.Context, mentorID string) (repository.PendingCounts, error) {
	var counts repository.PendingCounts
	for _, r := range m.requests {
		if r.MentorID != mentorID || r.Response != model.ResponsePending {
			continue
		}
		if r.CallType == model.CallTypeCall {
			counts.Calls++
		} else {
			counts.Messages++
		}
	}
	return counts, nil
}

func (m *mockRequestRepo) FindActiveAt(_ context.Context, mentorID string, callTime time.Time) (*model.Request, error) {
	for _, r := range m.requests {
		if r.MentorID == mentorID && r.CallTime != nil && r.CallTime.Equal(callTime) && r.Response.Active() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) UpdateResponse(_ context.Context, id string, from, to model.ResponseStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.requests[id]
	if !ok || r.Response != from {
		return pkgerrors.ErrOptimisticLock
	}
	r.Response = to
	return nil
}

// ── Mock FavoriteRepository ──

type mockFavoriteRepo struct {
	favorites map[string]*model.FavoriteMentor // key user|mentor
	mentors   *mockMentorRepo
	seq       int
}

func newMockFavoriteRepo(mentors *mockMentorRepo) *mockFavoriteRepo {
	return &mockFavoriteRepo{favorites: make(map[string]*model.FavoriteMentor), mentors: mentors}
}

func favoriteKey(userID, mentorID string) string { return userID + "|" + mentorID }

func (m *mockFavoriteRepo) Create(_ context.Context, favorite *model.FavoriteMentor) error {
	key := favoriteKey(favorite.UserID, favorite.MentorID)
	if _, ok := m.favorites[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.seq++
	favorite.FavoriteID = fmt.Sprintf("favorite-%d", m.seq)
	cp := *favorite
	m.favorites[key] = &cp
	return nil
}

func (m *mockFavoriteRepo) Get(_ context.Context, userID, mentorID string) (*model.FavoriteMentor, error) {
	if f, ok := m.favorites[favoriteKey(userID, mentorID)]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]model.FavoriteMentor, error) {
	var result []model.FavoriteMentor
	for _, f := range m.favorites {
		if f.UserID != userID {
			continue
		}
		cp := *f
		cp.Mentor, _ = m.mentors.GetByID(ctx, f.MentorID)
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FavoriteID < result[j].FavoriteID })
	return result, nil
}

func (m *mockFavoriteRepo) Delete(_ context.Context, userID, mentorID string) error {
	key := favoriteKey(userID, mentorID)
	if _, ok := m.favorites[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.favorites, key)
	return nil
}

// ── Mock ProfileLookup ──

type mockProfiles struct {
	profiles map[string]*profile.Profile
	err      error
}

func (m *mockProfiles) Fetch(_ context.Context, externalID string) (*profile.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.profiles[externalID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: status 404", pkgerrors.ErrUpstreamUnavailable)
}

// ── Mock MentorLocker ──

type mockLocker struct {
	locked map[string]int
	err    error
}

func newMockLocker() *mockLocker { return &mockLocker{locked: make(map[string]int)} }

func (m *mockLocker) Lock(_ context.Context, key string) (func(), error) {
	if m.err != nil {
		return nil, m.err
	}
	m.locked[key]++
	return func() { m.locked[key]-- }, nil
}

// ── fixture ──

type fixture struct {
	repo      *repository.Repository
	mentors   *mockMentorRepo
	windows   *mockTimeWindowRepo
	requests  *mockRequestRepo
	favorites *mockFavoriteRepo
	locker    *mockLocker
}

func newFixture() *fixture {
	mentors := newMockMentorRepo()
	f := &fixture{
		mentors:   mentors,
		windows:   newMockTimeWindowRepo(),
		requests:  newMockRequestRepo(),
		favorites: newMockFavoriteRepo(mentors),
		locker:    newMockLocker(),
	}
	f.repo = &repository.Repository{
		Mentor:     f.mentors,
		TimeWindow: f.windows,
		Request:    f.requests,
		Favorite:   f.favorites,
	}
	return f
}

func (f *fixture) addMentor(telegramID, name string) *model.Mentor {
	mentor := &model.Mentor{TelegramID: telegramID, Name: name, Info: "bio"}
	_ = f.mentors.Create(context.Background(), mentor)
	return mentor
}

func (f *fixture) addWindow(mentorID string, day int, start, end string) *model.TimeWindow {
	w := &model.TimeWindow{MentorID: mentorID, DayOfWeek: day, StartTime: start, EndTime: end}
	_ = f.windows.Create(context.Background(), w)
	return w
}
