package attempt

import (
	"context"
	"fmt"

	"github.com/example/quizme/internal/question"
	"github.com/example/quizme/internal/quizerr"
)

// Recorder records attempts against existing questions.
type Recorder struct {
	questions question.QuestionRepository
	attempts  AttemptRepository
}

// NewRecorder creates a new Recorder.
func NewRecorder(questions question.QuestionRepository, attempts AttemptRepository) *Recorder {
	return &Recorder{questions: questions, attempts: attempts}
}

// Record appends a new attempt. The question id arrives from the client and
// is revalidated here; a missing question is ErrNotFound, and a failed insert
// surfaces as a PersistenceError rather than being dropped.
func (r *Recorder) Record(ctx context.Context, userID, questionID int64, text string) (*Attempt, error) {
	q, err := r.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("find question > %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("question %d: %w", questionID, quizerr.ErrNotFound)
	}

	a := &Attempt{
		UserID:     userID,
		QuestionID: questionID,
		Text:       text,
	}
	if err := r.attempts.Create(ctx, a); err != nil {
		return nil, quizerr.Persistence("record attempt", err)
	}
	return a, nil
}

// Review loads an attempt together with its question so the answer can be
// shown. Attempts belonging to another user are indistinguishable from
// missing ones.
func (r *Recorder) Review(ctx context.Context, userID, attemptID int64) (*Attempt, *question.Question, error) {
	a, err := r.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, nil, fmt.Errorf("find attempt > %w", err)
	}
	if a == nil || a.UserID != userID {
		return nil, nil, fmt.Errorf("attempt %d: %w", attemptID, quizerr.ErrNotFound)
	}

	q, err := r.questions.FindByID(ctx, a.QuestionID)
	if err != nil {
		return nil, nil, fmt.Errorf("find question > %w", err)
	}
	if q == nil {
		return nil, nil, fmt.Errorf("question %d: %w", a.QuestionID, quizerr.ErrNotFound)
	}
	return a, q, nil
}
