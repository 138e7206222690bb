// Package selector computes the next question to present to a user.
package selector

import (
	"context"
	"fmt"
	"time"

	"github.com/example/quizme/internal/question"
)

//go:generate mockgen -source=selector.go -destination=../mocks/selector/mock_candidate_source.go -package=mock_selector

// CandidateSource supplies the questions a user is eligible to see, each
// annotated with its newest attempt time. Implemented by
// question.DBQuestionRepository.
type CandidateSource interface {
	FindCandidates(ctx context.Context, userID int64) ([]question.Candidate, error)
}

// Selector picks the next question for a user. Selection is read-only and
// deterministic: calling it twice against the same database state returns the
// same question.
type Selector struct {
	source CandidateSource
}

// New creates a new Selector.
func New(source CandidateSource) *Selector {
	return &Selector{source: source}
}

// Next returns the next question for the user, or nil when no eligible
// question exists. An empty result is a normal outcome, not an error.
func (s *Selector) Next(ctx context.Context, userID int64) (*question.Question, error) {
	candidates, err := s.source.FindCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find candidates > %w", err)
	}
	return Pick(candidates), nil
}

// Pick chooses one question from the candidate set:
//
//  1. If any candidate has never been attempted, take the one created
//     longest ago among those.
//  2. Otherwise take the candidate whose newest attempt is oldest, i.e. the
//     question that has waited longest for a revisit.
//  3. With no candidates at all, return nil.
//
// Equal timestamps fall back to the smaller question id so the choice stays
// deterministic regardless of row order.
func Pick(candidates []question.Candidate) *question.Question {
	var fresh, waiting *question.Candidate

	for i := range candidates {
		c := &candidates[i]
		if c.LastAttemptAt == nil {
			if fresh == nil || beats(c.CreatedAt, c.ID, fresh.CreatedAt, fresh.ID) {
				fresh = c
			}
			continue
		}
		if waiting == nil || beats(*c.LastAttemptAt, c.ID, *waiting.LastAttemptAt, waiting.ID) {
			waiting = c
		}
	}

	if fresh != nil {
		q := fresh.Question
		return &q
	}
	if waiting != nil {
		q := waiting.Question
		return &q
	}
	return nil
}

func beats(t time.Time, id int64, bestT time.Time, bestID int64) bool {
	if t.Before(bestT) {
		return true
	}
	if t.After(bestT) {
		return false
	}
	return id < bestID
}
