package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ScheduleRepository persists review schedules.
type ScheduleRepository interface {
	FindByUserAndQuestion(ctx context.Context, userID, questionID int64) (*Schedule, error)
	Upsert(ctx context.Context, s *Schedule) error
}

type DBScheduleRepository struct {
	db *sqlx.DB
}

var _ ScheduleRepository = (*DBScheduleRepository)(nil)

func NewDBScheduleRepository(db *sqlx.DB) *DBScheduleRepository {
	return &DBScheduleRepository{db: db}
}

// FindByUserAndQuestion returns the schedule for the pair, or nil when the
// question has never been judged by this user.
func (repo *DBScheduleRepository) FindByUserAndQuestion(ctx context.Context, userID, questionID int64) (*Schedule, error) {
	var s Schedule
	if err := repo.db.GetContext(
		ctx,
		&s,
		"SELECT * FROM schedules WHERE user_id = ? AND question_id = ?",
		userID,
		questionID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext(schedule) > %w", err)
	}
	return &s, nil
}

// Upsert inserts the schedule or, when a row for the (user, question) pair
// already exists, overwrites its review state in place.
func (repo *DBScheduleRepository) Upsert(ctx context.Context, s *Schedule) error {
	result, err := repo.db.ExecContext(
		ctx,
		"INSERT INTO schedules (user_id, question_id, percent_correct, percent_importance, date_show_next, interval_num, interval_unit) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE "+
			"percent_correct = VALUES(percent_correct), "+
			"percent_importance = VALUES(percent_importance), "+
			"date_show_next = VALUES(date_show_next), "+
			"interval_num = VALUES(interval_num), "+
			"interval_unit = VALUES(interval_unit)",
		s.UserID,
		s.QuestionID,
		s.PercentCorrect,
		s.PercentImportance,
		s.DateShowNext,
		s.IntervalNum,
		s.IntervalUnit,
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert schedule) > %w", err)
	}
	if id, err := result.LastInsertId(); err == nil && id > 0 {
		s.ID = id
	}
	return nil
}
