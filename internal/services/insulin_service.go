package services

import (
	"math"
	"strings"
	"time"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dosage"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/models"
	"gorm.io/gorm"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

var periodDays = map[string]int{
	PeriodWeekly:  7,
	PeriodMonthly: 30,
}

type InsulinService struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

func NewInsulinService(db *gorm.DB) *InsulinService {
	return &InsulinService{db: db, now: time.Now, loc: time.Local}
}

// WithClock fixes the time source and the location used for day bounds.
func (s *InsulinService) WithClock(now func() time.Time, loc *time.Location) *InsulinService {
	s.now = now
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Create stores a reading. A missing suggested dosage is filled from the
// glucose reading and never recomputed afterwards.
func (s *InsulinService) Create(req *dto.CreateInsulinLogRequest) (*models.InsulinLog, error) {
	switch {
	case req.UserID == 0:
		return nil, apperr.Validation("user_id is required")
	case req.GlucoseReading == nil:
		return nil, apperr.Validation("glucose_reading is required")
	case req.InsulinDosage == nil:
		return nil, apperr.Validation("insulin_dosage is required")
	}

	if err := ensureExists(s.db, &models.User{}, req.UserID, ErrUserNotFound); err != nil {
		return nil, err
	}
	if req.MedicineLogID != nil {
		if err := ensureExists(s.db, &models.MedicineLog{}, *req.MedicineLogID, ErrMedicineLogNotFound); err != nil {
			return nil, err
		}
	}

	suggested := req.SuggestedDosage
	if suggested == nil {
		v := dosage.Advise(*req.GlucoseReading)
		suggested = &v
	}
	recordedAt := s.now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	log := models.InsulinLog{
		UserID:          req.UserID,
		MedicineLogID:   req.MedicineLogID,
		GlucoseReading:  *req.GlucoseReading,
		InsulinDosage:   *req.InsulinDosage,
		SuggestedDosage: suggested,
		Notes:           req.Notes,
		RecordedAt:      recordedAt,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, wrapInternal("create insulin log", err)
	}
	return &log, nil
}

// List returns logs newest first.
func (s *InsulinService) List(userID *uint) ([]models.InsulinLog, error) {
	query := s.db.Model(&models.InsulinLog{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var logs []models.InsulinLog
	if err := query.Order("recorded_at DESC").Find(&logs).Error; err != nil {
		return nil, wrapInternal("list insulin logs", err)
	}
	return logs, nil
}

// Daily returns a user's readings for one calendar day in the service
// location, oldest first. An empty date means today.
func (s *InsulinService) Daily(userID uint, date string) ([]models.InsulinLog, error) {
	start, end, err := dayBounds(date, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	var logs []models.InsulinLog
	err = s.db.
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, start, end).
		Order("recorded_at").
		Find(&logs).Error
	if err != nil {
		return nil, wrapInternal("list daily insulin logs", err)
	}
	return logs, nil
}

// Stats summarizes a user's readings over the trailing weekly or monthly
// period.
func (s *InsulinService) Stats(userID uint, period string) (*dto.StatsResponse, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, apperr.Validationf("unknown period %q", period)
	}
	since := s.now().AddDate(0, 0, -days)

	var logs []models.InsulinLog
	err := s.db.
		Where("user_id = ? AND recorded_at >= ?", userID, since).
		Order("recorded_at").
		Find(&logs).Error
	if err != nil {
		return nil, wrapInternal("load insulin stats", err)
	}

	stats := summarize(logs)
	stats.UserID = userID
	stats.Period = period
	return stats, nil
}

// Suggest wraps the advisor for the suggestion endpoint.
func (s *InsulinService) Suggest(glucose float64) dto.DosageSuggestion {
	return dto.DosageSuggestion{
		GlucoseReading:  glucose,
		SuggestedDosage: dosage.Advise(glucose),
		Unit:            dosage.Unit,
		Note:            dosage.Note,
	}
}

// dayBounds accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns the
// first and last instant of that day in loc.
func dayBounds(date string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	day := now.In(loc)
	if date = strings.TrimSpace(date); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			ts, tsErr := time.Parse(time.RFC3339, date)
			if tsErr != nil {
				return time.Time{}, time.Time{}, apperr.Validationf("invalid date %q, use YYYY-MM-DD", date)
			}
			parsed = ts.In(loc)
		}
		day = parsed
	}

	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end, nil
}

func summarize(logs []models.InsulinLog) *dto.StatsResponse {
	stats := &dto.StatsResponse{TotalEntries: len(logs)}
	if len(logs) == 0 {
		return stats
	}

	var sumGlucose, sumInsulin float64
	stats.MinGlucose = logs[0].GlucoseReading
	stats.MaxGlucose = logs[0].GlucoseReading
	for _, l := range logs {
		sumGlucose += l.GlucoseReading
		sumInsulin += l.InsulinDosage
		stats.MinGlucose = math.Min(stats.MinGlucose, l.GlucoseReading)
		stats.MaxGlucose = math.Max(stats.MaxGlucose, l.GlucoseReading)
	}
	n := float64(len(logs))
	stats.AvgGlucose = round2(sumGlucose / n)
	stats.AvgInsulin = round2(sumInsulin / n)
	stats.Logs = logs
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
