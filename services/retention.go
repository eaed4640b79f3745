package services

import (
	"time"

	"gametribe-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RetentionService records play sessions and builds weekly-cohort retention
// matrices over them. Cohort = the week of a user's first recorded session
// inside the reporting window.
type RetentionService struct {
	DB *gorm.DB
}

func NewRetentionService(db *gorm.DB) *RetentionService {
	return &RetentionService{DB: db}
}

// RecordSession appends one play session. Implements SessionRecorder.
func (s *RetentionService) RecordSession(userID, gameID string, minutes int64, playedAt time.Time) error {
	session := models.GameSession{
		ID:       uuid.NewString(),
		UserID:   userID,
		GameID:   gameID,
		Minutes:  minutes,
		PlayedAt: playedAt,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

type RetentionCohort struct {
	Week      string    `json:"week"` // Monday of the cohort week, YYYY-MM-DD
	Users     int       `json:"users"`
	Retention []float64 `json:"retention"` // % of the cohort active at each week offset
}

type RetentionReport struct {
	Weeks       int               `json:"weeks"`
	Cohorts     []RetentionCohort `json:"cohorts"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// WeeklyRetention builds the cohort matrix for the last `weeks` weeks.
func (s *RetentionService) WeeklyRetention(weeks int) (*RetentionReport, error) {
	if weeks < 1 || weeks > 26 {
		weeks = 8
	}
	now := time.Now().UTC()
	since := weekStart(now).AddDate(0, 0, -7*(weeks-1))

	var sessions []models.GameSession
	if err := s.DB.Select("user_id", "played_at").
		Where("played_at >= ?", since).
		Find(&sessions).Error; err != nil {
		return nil, storeErr(err)
	}

	report := buildRetention(sessions, weeks, now)
	return report, nil
}

// buildRetention is the pure cohort computation: one pass to find each user's
// cohort week and activity weeks, then a small matrix walk.
func buildRetention(sessions []models.GameSession, weeks int, now time.Time) *RetentionReport {
	currentWeek := weekStart(now)

	type weekKey struct {
		user string
		week time.Time
	}
	cohortOf := map[string]time.Time{}
	active := map[weekKey]bool{}

	for _, sess := range sessions {
		week := weekStart(sess.PlayedAt.UTC())
		if first, ok := cohortOf[sess.UserID]; !ok || week.Before(first) {
			cohortOf[sess.UserID] = week
		}
		active[weekKey{sess.UserID, week}] = true
	}

	cohortUsers := map[time.Time][]string{}
	for user, week := range cohortOf {
		cohortUsers[week] = append(cohortUsers[week], user)
	}

	report := &RetentionReport{Weeks: weeks, GeneratedAt: now}
	for i := 0; i < weeks; i++ {
		week := currentWeek.AddDate(0, 0, -7*(weeks-1-i))
		users := cohortUsers[week]
		cohort := RetentionCohort{
			Week:  week.Format("2006-01-02"),
			Users: len(users),
		}
		// Only offsets that have already happened for this cohort.
		maxOffset := int(currentWeek.Sub(week).Hours()/(24*7)) + 1
		for offset := 0; offset < maxOffset; offset++ {
			target := week.AddDate(0, 0, 7*offset)
			count := 0
			for _, user := range users {
				if active[weekKey{user, target}] {
					count++
				}
			}
			pct := 0.0
			if len(users) > 0 {
				pct = float64(count) / float64(len(users)) * 100.0
			}
			cohort.Retention = append(cohort.Retention, pct)
		}
		report.Cohorts = append(report.Cohorts, cohort)
	}
	return report
}

// weekStart truncates to the Monday of t's week, UTC day granularity.
func weekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
