// Package schedule models per-user review schedules and the pluggable
// policy that advances them after a judged attempt.
package schedule

import "time"

// Unit is the unit of a schedule interval.
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
	UnitWeeks   Unit = "weeks"
)

// Duration converts n of this unit into a time.Duration.
func (u Unit) Duration(n float64) time.Duration {
	switch u {
	case UnitMinutes:
		return time.Duration(n * float64(time.Minute))
	case UnitHours:
		return time.Duration(n * float64(time.Hour))
	case UnitDays:
		return time.Duration(n * 24 * float64(time.Hour))
	case UnitWeeks:
		return time.Duration(n * 7 * 24 * float64(time.Hour))
	}
	return 0
}

// Schedule is the review state for one (user, question) pair. One row per
// pair, created on the first judged attempt and updated on every one after.
type Schedule struct {
	ID                int64     `db:"id"`
	UserID            int64     `db:"user_id"`
	QuestionID        int64     `db:"question_id"`
	PercentCorrect    float64   `db:"percent_correct"`
	PercentImportance float64   `db:"percent_importance"`
	DateShowNext      time.Time `db:"date_show_next"`
	IntervalNum       float64   `db:"interval_num"`
	IntervalUnit      Unit      `db:"interval_unit"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Judgment is the user's self-assessment of one attempt: how correct the
// answer was and how important the question is, both 0-100.
type Judgment struct {
	PercentCorrect    float64 `json:"percent_correct"`
	PercentImportance float64 `json:"percent_importance"`
}

// Outcome is what a Policy decides for the next review cycle.
type Outcome struct {
	NextShowAt        time.Time
	IntervalNum       float64
	IntervalUnit      Unit
	PercentCorrect    float64
	PercentImportance float64
}
