package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/internal/repository"
	"github.com/mlcinall/mentor-service/internal/slot"
)

var ErrExportGenerateFail = errors.New("failed to generate export file")

// ExportService renders a mentor's availability and booked calls as files.
// Both return the file body and a suggested filename; the handler sets headers.
type ExportService interface {
	// AvailabilityWorkbook one column per weekday, one row per window.
	AvailabilityWorkbook(ctx context.Context, mentorID string) (*bytes.Buffer, string, error)
	// CallsCalendar accepted calls as 30-minute VEVENTs.
	CallsCalendar(ctx context.Context, mentorID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ═══════════════════════════════════════════════════════════
// AvailabilityWorkbook
// ═══════════════════════════════════════════════════════════
//
//	| Monday      | Tuesday | ... | Sunday |
//	| 08:00-12:00 |         |     |        |
//	| 14:00-15:30 |         |     |        |

func (s *exportService) AvailabilityWorkbook(ctx context.Context, mentorID string) (*bytes.Buffer, string, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, mentorID)
	if err != nil {
		return nil, "", notFound(err, ErrMentorNotFound)
	}

	windows, err := s.repo.TimeWindow.ListByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("list windows failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Availability"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for day, name := range dayNames {
		col := colName(day)
		f.SetColWidth(sheet, col, col, 16)
		f.SetCellValue(sheet, cell(col, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(6), 1), headerStyle)

	// rows fill per column since windows arrive ordered by day then start
	next := [7]int{2, 2, 2, 2, 2, 2, 2}
	for i := range windows {
		w, err := toSlotWindow(&windows[i])
		if err != nil || !slot.ValidDay(w.Day) {
			continue
		}
		text := fmt.Sprintf("%s-%s", w.Start.String()[:5], w.End.String()[:5])
		f.SetCellValue(sheet, cell(colName(w.Day), next[w.Day]), text)
		next[w.Day]++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("availability_%s.xlsx", mentor.TelegramID), nil
}

// ═══════════════════════════════════════════════════════════
// CallsCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) CallsCalendar(ctx context.Context, mentorID string) ([]byte, string, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, mentorID)
	if err != nil {
		return nil, "", notFound(err, ErrMentorNotFound)
	}

	calls, err := s.repo.Request.ListAcceptedCalls(ctx, mentorID)
	if err != nil {
		s.logger.Error("list accepted calls failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//mentor-service//calls//EN")

	stamp := time.Now().UTC()
	for i := range calls {
		call := &calls[i]
		if call.CallTime == nil {
			continue
		}
		start := *call.CallTime
		event := cal.AddEvent(call.RequestID + "@mentor-service")
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(call.TimeSent)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(slot.Step) * time.Second))
		event.SetSummary(fmt.Sprintf("Call with %s", mentor.Name))
		event.SetDescription(call.Description)
	}

	return []byte(cal.Serialize()), fmt.Sprintf("calls_%s.ics", mentor.TelegramID), nil
}

// ── helpers ──

// colName maps a 0-based column index to its letter.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
