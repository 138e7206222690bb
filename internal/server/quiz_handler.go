// Package server exposes the quiz workflow over HTTP JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/quizme/internal/attempt"
	"github.com/example/quizme/internal/question"
	"github.com/example/quizme/internal/quizerr"
	"github.com/example/quizme/internal/schedule"
	"github.com/example/quizme/internal/subscription"
)

//go:generate mockgen -source=quiz_handler.go -destination=../mocks/server/mock_services.go -package=mock_server

// SubscriptionService manages which tags a user draws questions from.
// Implemented by subscription.Manager.
type SubscriptionService interface {
	EnsureSubscriptions(ctx context.Context, userID int64) error
	Subscriptions(ctx context.Context, userID int64) ([]subscription.UserTag, error)
	ApplyUpdates(ctx context.Context, userID int64, updates []subscription.Update) error
}

// QuestionPicker selects the next question for a user. Implemented by
// selector.Selector.
type QuestionPicker interface {
	Next(ctx context.Context, userID int64) (*question.Question, error)
}

// QuestionFinder looks up catalog questions by id. Implemented by
// question.DBQuestionRepository.
type QuestionFinder interface {
	FindByID(ctx context.Context, id int64) (*question.Question, error)
}

// AttemptService records and reviews attempts. Implemented by
// attempt.Recorder.
type AttemptService interface {
	Record(ctx context.Context, userID, questionID int64, text string) (*attempt.Attempt, error)
	Review(ctx context.Context, userID, attemptID int64) (*attempt.Attempt, *question.Question, error)
}

// ScheduleService applies judged attempts to review schedules. Implemented by
// schedule.Scheduler.
type ScheduleService interface {
	Update(ctx context.Context, userID, questionID int64, j schedule.Judgment) (*schedule.Schedule, error)
}

// QuizHandler serves the quiz workflow endpoints.
type QuizHandler struct {
	logger        *slog.Logger
	subscriptions SubscriptionService
	picker        QuestionPicker
	questions     QuestionFinder
	attempts      AttemptService
	schedules     ScheduleService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(
	logger *slog.Logger,
	subscriptions SubscriptionService,
	picker QuestionPicker,
	questions QuestionFinder,
	attempts AttemptService,
	schedules ScheduleService,
) *QuizHandler {
	return &QuizHandler{
		logger:        logger,
		subscriptions: subscriptions,
		picker:        picker,
		questions:     questions,
		attempts:      attempts,
		schedules:     schedules,
	}
}

// Register mounts the quiz routes on mux. Method-specific patterns make the
// mux answer 405 on a known path with the wrong method.
func (h *QuizHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /quiz", h.PrepareQuestionView)
	mux.HandleFunc("GET /quiz/next", h.NextQuestion)
	mux.HandleFunc("GET /quiz/questions/{id}", h.GetQuestion)
	mux.HandleFunc("POST /quiz/attempts", h.SubmitAttempt)
	mux.HandleFunc("GET /quiz/answers/{id}", h.GetAnswer)
	mux.HandleFunc("POST /quiz/answers/{id}/schedule", h.SubmitScheduleJudgment)
	mux.HandleFunc("PUT /quiz/subscriptions", h.ApplySubscriptionUpdates)
}

type questionView struct {
	ID        int64     `json:"id"`
	Text      string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

type answerView struct {
	questionView
	Answer string `json:"answer"`
}

type attemptView struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	Text       string    `json:"attempt"`
	CreatedAt  time.Time `json:"created_at"`
}

type subscriptionView struct {
	TagID   int64  `json:"tag_id"`
	TagName string `json:"tag_name"`
	Enabled bool   `json:"enabled"`
}

type scheduleView struct {
	QuestionID        int64     `json:"question_id"`
	PercentCorrect    float64   `json:"percent_correct"`
	PercentImportance float64   `json:"percent_importance"`
	DateShowNext      time.Time `json:"date_show_next"`
	IntervalNum       float64   `json:"interval_num"`
	IntervalUnit      string    `json:"interval_unit"`
}

func newQuestionView(q *question.Question) *questionView {
	if q == nil {
		return nil
	}
	return &questionView{ID: q.ID, Text: q.Text, CreatedAt: q.CreatedAt}
}

func newSubscriptionViews(userTags []subscription.UserTag) []subscriptionView {
	views := make([]subscriptionView, 0, len(userTags))
	for _, userTag := range userTags {
		views = append(views, subscriptionView{
			TagID:   userTag.TagID,
			TagName: userTag.TagName,
			Enabled: userTag.Enabled,
		})
	}
	return views
}

// PrepareQuestionView handles GET /quiz: it makes sure the user has a
// subscription row per catalog tag, then returns the next question together
// with the subscription checklist. A null question is the empty state, not an
// error.
func (h *QuizHandler) PrepareQuestionView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.writeError(w, r, errMissingIdentity)
		return
	}

	if err := h.subscriptions.EnsureSubscriptions(ctx, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	userTags, err := h.subscriptions.Subscriptions(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	next, err := h.picker.Next(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"question":      newQuestionView(next),
		"subscriptions": newSubscriptionViews(userTags),
	})
}

// NextQuestion handles GET /quiz/next: it picks the next question and
// redirects to its view, falling back to the quiz page when nothing is
// eligible.
func (h *QuizHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		h.writeError(w, r, errMissingIdentity)
		return
	}

	next, err := h.picker.Next(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if next == nil {
		http.Redirect(w, r, "/quiz", http.StatusFound)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/quiz/questions/%d", next.ID), http.StatusFound)
}

// GetQuestion handles GET /quiz/questions/{id}. The answer is deliberately
// absent from the payload; it becomes visible only after an attempt.
func (h *QuizHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	q, err := h.questions.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if q == nil {
		h.writeError(w, r, fmt.Errorf("question %d: %w", id, quizerr.ErrNotFound))
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"question": newQuestionView(q)})
}

type submitAttemptRequest struct {
	QuestionID int64  `json:"question_id"`
	Attempt    string `json:"attempt"`
}

// SubmitAttempt handles POST /quiz/attempts: it appends the attempt and
// returns it together with the answer so the client can show the comparison.
// An empty attempt text is legal.
func (h *QuizHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.writeError(w, r, errMissingIdentity)
		return
	}

	var req submitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, quizerr.NewValidationError().Add("body", "malformed JSON"))
		return
	}

	a, err := h.attempts.Record(ctx, userID, req.QuestionID, req.Attempt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := h.questions.FindByID(ctx, req.QuestionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if q == nil {
		h.writeError(w, r, fmt.Errorf("question %d: %w", req.QuestionID, quizerr.ErrNotFound))
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{
		"attempt": attemptView{ID: a.ID, QuestionID: a.QuestionID, Text: a.Text, CreatedAt: a.CreatedAt},
		"answer":  answerView{questionView: *newQuestionView(q), Answer: q.Answer},
	})
}

// GetAnswer handles GET /quiz/answers/{id}: the attempt together with the
// question and its answer.
func (h *QuizHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.writeError(w, r, errMissingIdentity)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	a, q, err := h.attempts.Review(ctx, userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"attempt": attemptView{ID: a.ID, QuestionID: a.QuestionID, Text: a.Text, CreatedAt: a.CreatedAt},
		"answer":  answerView{questionView: *newQuestionView(q), Answer: q.Answer},
	})
}

// SubmitScheduleJudgment handles POST /quiz/answers/{id}/schedule: the user
// judges the attempt with correctness and importance ratings and the review
// schedule for the question advances.
func (h *QuizHandler) SubmitScheduleJudgment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.writeError(w, r, errMissingIdentity)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var j schedule.Judgment
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		h.writeError(w, r, quizerr.NewValidationError().Add("body", "malformed JSON"))
		return
	}

	a, _, err := h.attempts.Review(ctx, userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.schedules.Update(ctx, userID, a.QuestionID, j)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"schedule": scheduleView{
			QuestionID:        s.QuestionID,
			PercentCorrect:    s.PercentCorrect,
			PercentImportance: s.PercentImportance,
			DateShowNext:      s.DateShowNext,
			IntervalNum:       s.IntervalNum,
			IntervalUnit:      string(s.IntervalUnit),
		},
	})
}

type applySubscriptionsRequest struct {
	Updates []subscription.Update `json:"updates"`
}

// ApplySubscriptionUpdates handles PUT /quiz/subscriptions: a bulk
// enable/disable of the user's tag subscriptions, all-or-nothing.
func (h *QuizHandler) ApplySubscriptionUpdates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.writeError(w, r, errMissingIdentity)
		return
	}

	var req applySubscriptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, quizerr.NewValidationError().Add("body", "malformed JSON"))
		return
	}

	if err := h.subscriptions.ApplyUpdates(ctx, userID, req.Updates); err != nil {
		h.writeError(w, r, err)
		return
	}
	userTags, err := h.subscriptions.Subscriptions(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"subscriptions": newSubscriptionViews(userTags),
	})
}

var errMissingIdentity = errors.New("no user identity on request context")

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, quizerr.NewValidationError().Add("id", "must be a positive integer")
	}
	return id, nil
}

func (h *QuizHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response", "path", r.URL.Path, "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses: rejected input is
// 422 with per-field messages, a stale id is 404, a failed write is 500 with
// the cause logged server-side.
func (h *QuizHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *quizerr.ValidationError
	var persistenceErr *quizerr.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		h.writeJSON(w, r, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, quizerr.ErrNotFound):
		h.writeJSON(w, r, http.StatusNotFound, map[string]any{"error": "not found"})
	case errors.Is(err, errMissingIdentity):
		h.writeJSON(w, r, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
	case errors.As(err, &persistenceErr):
		h.logger.ErrorContext(r.Context(), "persistence failure",
			"path", r.URL.Path, "op", persistenceErr.Op, "error", persistenceErr.Err)
		h.writeJSON(w, r, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		h.writeJSON(w, r, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}
