package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/example/quizme/internal/quizerr"
)

// Scheduler applies a judged attempt to the user's review schedule for a
// question. It loads the prior schedule, asks the policy for the next review
// cycle and writes the result back in a single upsert.
type Scheduler struct {
	schedules ScheduleRepository
	policy    Policy
	units     map[Unit]struct{}
	now       func() time.Time
}

// NewScheduler creates a Scheduler. allowedUnits restricts what interval
// units the policy may emit; an empty list allows all of them.
func NewScheduler(schedules ScheduleRepository, policy Policy, allowedUnits []Unit) *Scheduler {
	units := make(map[Unit]struct{}, len(allowedUnits))
	for _, u := range allowedUnits {
		units[u] = struct{}{}
	}
	return &Scheduler{
		schedules: schedules,
		policy:    policy,
		units:     units,
		now:       time.Now,
	}
}

// Update records the judgment for the (user, question) pair and returns the
// updated schedule. Validation of the judgment itself happens before the
// policy runs so that an out-of-range rating never reaches storage.
func (s *Scheduler) Update(ctx context.Context, userID, questionID int64, j Judgment) (*Schedule, error) {
	if verr := validateJudgment(j); verr.HasErrors() {
		return nil, verr
	}

	prior, err := s.schedules.FindByUserAndQuestion(ctx, userID, questionID)
	if err != nil {
		return nil, fmt.Errorf("schedules.FindByUserAndQuestion > %w", err)
	}

	out := s.policy.Review(prior, j, s.now())
	if len(s.units) > 0 {
		if _, ok := s.units[out.IntervalUnit]; !ok {
			return nil, fmt.Errorf("policy returned interval unit %q which is not allowed", out.IntervalUnit)
		}
	}

	next := &Schedule{
		UserID:            userID,
		QuestionID:        questionID,
		PercentCorrect:    out.PercentCorrect,
		PercentImportance: out.PercentImportance,
		DateShowNext:      out.NextShowAt,
		IntervalNum:       out.IntervalNum,
		IntervalUnit:      out.IntervalUnit,
	}
	if prior != nil {
		next.ID = prior.ID
	}
	if err := s.schedules.Upsert(ctx, next); err != nil {
		return nil, quizerr.Persistence("update schedule", err)
	}
	return next, nil
}

func validateJudgment(j Judgment) *quizerr.ValidationError {
	verr := quizerr.NewValidationError()
	if j.PercentCorrect < 0 || j.PercentCorrect > 100 {
		verr.Add("percent_correct", "must be between 0 and 100")
	}
	if j.PercentImportance < 0 || j.PercentImportance > 100 {
		verr.Add("percent_importance", "must be between 0 and 100")
	}
	return verr
}
