package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/example/quizme/internal/attempt"
	mock_server "github.com/example/quizme/internal/mocks/server"
	"github.com/example/quizme/internal/question"
	"github.com/example/quizme/internal/quizerr"
	"github.com/example/quizme/internal/schedule"
	"github.com/example/quizme/internal/subscription"
)

type handlerMocks struct {
	subscriptions *mock_server.MockSubscriptionService
	picker        *mock_server.MockQuestionPicker
	questions     *mock_server.MockQuestionFinder
	attempts      *mock_server.MockAttemptService
	schedules     *mock_server.MockScheduleService
}

func newTestServer(t *testing.T) (*httptest.Server, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := handlerMocks{
		subscriptions: mock_server.NewMockSubscriptionService(ctrl),
		picker:        mock_server.NewMockQuestionPicker(ctrl),
		questions:     mock_server.NewMockQuestionFinder(ctrl),
		attempts:      mock_server.NewMockAttemptService(ctrl),
		schedules:     mock_server.NewMockScheduleService(ctrl),
	}

	handler := NewQuizHandler(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		mocks.subscriptions,
		mocks.picker,
		mocks.questions,
		mocks.attempts,
		mocks.schedules,
	)
	mux := http.NewServeMux()
	handler.Register(mux)

	srv := httptest.NewServer(IdentityMiddleware(mux))
	t.Cleanup(srv.Close)
	return srv, mocks
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, userID, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	res, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = res.Body.Close()
	})
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestQuizHandler_PrepareQuestionView(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns the next question and the subscription checklist", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.subscriptions.EXPECT().EnsureSubscriptions(gomock.Any(), int64(1)).Return(nil)
		mocks.subscriptions.EXPECT().Subscriptions(gomock.Any(), int64(1)).Return([]subscription.UserTag{
			{TagID: 2, TagName: "algebra", Enabled: true},
			{TagID: 5, TagName: "geometry", Enabled: false},
		}, nil)
		mocks.picker.EXPECT().Next(gomock.Any(), int64(1)).Return(&question.Question{
			ID: 10, Text: "What is 2+2?", Answer: "4", CreatedAt: created,
		}, nil)

		res := doRequest(t, srv, http.MethodGet, "/quiz", "1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		q := body["question"].(map[string]any)
		assert.Equal(t, float64(10), q["id"])
		assert.Equal(t, "What is 2+2?", q["question"])
		// The answer never leaks into the question view.
		assert.NotContains(t, q, "answer")
		assert.Len(t, body["subscriptions"], 2)
	})

	t.Run("no eligible question is an empty state, not an error", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.subscriptions.EXPECT().EnsureSubscriptions(gomock.Any(), int64(1)).Return(nil)
		mocks.subscriptions.EXPECT().Subscriptions(gomock.Any(), int64(1)).Return(nil, nil)
		mocks.picker.EXPECT().Next(gomock.Any(), int64(1)).Return(nil, nil)

		res := doRequest(t, srv, http.MethodGet, "/quiz", "1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Nil(t, decodeBody(t, res)["question"])
	})

	t.Run("seeding failure maps to 500", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.subscriptions.EXPECT().EnsureSubscriptions(gomock.Any(), int64(1)).
			Return(quizerr.Persistence("seed subscriptions", fmt.Errorf("deadlock")))

		res := doRequest(t, srv, http.MethodGet, "/quiz", "1", "")
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})
}

func TestQuizHandler_NextQuestion(t *testing.T) {
	t.Run("redirects to the picked question", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.picker.EXPECT().Next(gomock.Any(), int64(1)).
			Return(&question.Question{ID: 42, Text: "Q"}, nil)

		res := doRequest(t, srv, http.MethodGet, "/quiz/next", "1", "")
		require.Equal(t, http.StatusFound, res.StatusCode)
		assert.Equal(t, "/quiz/questions/42", res.Header.Get("Location"))
	})

	t.Run("redirects to the quiz page when nothing is eligible", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.picker.EXPECT().Next(gomock.Any(), int64(1)).Return(nil, nil)

		res := doRequest(t, srv, http.MethodGet, "/quiz/next", "1", "")
		require.Equal(t, http.StatusFound, res.StatusCode)
		assert.Equal(t, "/quiz", res.Header.Get("Location"))
	})
}

func TestQuizHandler_GetQuestion(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mock       func(mocks handlerMocks)
		wantStatus int
	}{
		{
			name: "returns the question without its answer",
			path: "/quiz/questions/10",
			mock: func(mocks handlerMocks) {
				mocks.questions.EXPECT().FindByID(gomock.Any(), int64(10)).
					Return(&question.Question{ID: 10, Text: "Q", Answer: "A"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "stale id maps to 404",
			path: "/quiz/questions/99",
			mock: func(mocks handlerMocks) {
				mocks.questions.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric id maps to 422",
			path:       "/quiz/questions/abc",
			mock:       func(handlerMocks) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mocks := newTestServer(t)
			tt.mock(mocks)

			res := doRequest(t, srv, http.MethodGet, tt.path, "1", "")
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}

func TestQuizHandler_SubmitAttempt(t *testing.T) {
	t.Run("records the attempt and reveals the answer", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Record(gomock.Any(), int64(1), int64(10), "four").
			Return(&attempt.Attempt{ID: 7, UserID: 1, QuestionID: 10, Text: "four"}, nil)
		mocks.questions.EXPECT().FindByID(gomock.Any(), int64(10)).
			Return(&question.Question{ID: 10, Text: "What is 2+2?", Answer: "4"}, nil)

		res := doRequest(t, srv, http.MethodPost, "/quiz/attempts", "1",
			`{"question_id":10,"attempt":"four"}`)
		require.Equal(t, http.StatusCreated, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, float64(7), body["attempt"].(map[string]any)["id"])
		assert.Equal(t, "4", body["answer"].(map[string]any)["answer"])
	})

	t.Run("stale question id maps to 404", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Record(gomock.Any(), int64(1), int64(99), "").
			Return(nil, fmt.Errorf("question 99: %w", quizerr.ErrNotFound))

		res := doRequest(t, srv, http.MethodPost, "/quiz/attempts", "1",
			`{"question_id":99,"attempt":""}`)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("failed insert maps to 500, never silently dropped", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Record(gomock.Any(), int64(1), int64(10), "four").
			Return(nil, quizerr.Persistence("record attempt", fmt.Errorf("deadlock")))

		res := doRequest(t, srv, http.MethodPost, "/quiz/attempts", "1",
			`{"question_id":10,"attempt":"four"}`)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})

	t.Run("malformed body maps to 422", func(t *testing.T) {
		srv, _ := newTestServer(t)
		res := doRequest(t, srv, http.MethodPost, "/quiz/attempts", "1", `{"question_id":`)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})
}

func TestQuizHandler_GetAnswer(t *testing.T) {
	t.Run("returns the attempt with the question and its answer", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Review(gomock.Any(), int64(1), int64(7)).
			Return(
				&attempt.Attempt{ID: 7, UserID: 1, QuestionID: 10, Text: "four"},
				&question.Question{ID: 10, Text: "What is 2+2?", Answer: "4"},
				nil,
			)

		res := doRequest(t, srv, http.MethodGet, "/quiz/answers/7", "1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "four", body["attempt"].(map[string]any)["attempt"])
		assert.Equal(t, "4", body["answer"].(map[string]any)["answer"])
	})

	t.Run("another user's attempt maps to 404", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Review(gomock.Any(), int64(2), int64(7)).
			Return(nil, nil, fmt.Errorf("attempt 7: %w", quizerr.ErrNotFound))

		res := doRequest(t, srv, http.MethodGet, "/quiz/answers/7", "2", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestQuizHandler_SubmitScheduleJudgment(t *testing.T) {
	next := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("advances the schedule for the judged question", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Review(gomock.Any(), int64(1), int64(7)).
			Return(
				&attempt.Attempt{ID: 7, UserID: 1, QuestionID: 10},
				&question.Question{ID: 10},
				nil,
			)
		mocks.schedules.EXPECT().
			Update(gomock.Any(), int64(1), int64(10), schedule.Judgment{PercentCorrect: 80, PercentImportance: 40}).
			Return(&schedule.Schedule{
				QuestionID:        10,
				PercentCorrect:    80,
				PercentImportance: 40,
				DateShowNext:      next,
				IntervalNum:       1,
				IntervalUnit:      schedule.UnitDays,
			}, nil)

		res := doRequest(t, srv, http.MethodPost, "/quiz/answers/7/schedule", "1",
			`{"percent_correct":80,"percent_importance":40}`)
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		s := body["schedule"].(map[string]any)
		assert.Equal(t, float64(10), s["question_id"])
		assert.Equal(t, "days", s["interval_unit"])
	})

	t.Run("out-of-range rating maps to 422 with field messages", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.attempts.EXPECT().Review(gomock.Any(), int64(1), int64(7)).
			Return(
				&attempt.Attempt{ID: 7, UserID: 1, QuestionID: 10},
				&question.Question{ID: 10},
				nil,
			)
		mocks.schedules.EXPECT().
			Update(gomock.Any(), int64(1), int64(10), gomock.Any()).
			Return(nil, quizerr.NewValidationError().Add("percent_correct", "must be between 0 and 100"))

		res := doRequest(t, srv, http.MethodPost, "/quiz/answers/7/schedule", "1",
			`{"percent_correct":120,"percent_importance":40}`)
		require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

		fields := decodeBody(t, res)["fields"].(map[string]any)
		assert.Contains(t, fields, "percent_correct")
	})
}

func TestQuizHandler_ApplySubscriptionUpdates(t *testing.T) {
	t.Run("applies the batch and returns the updated checklist", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		updates := []subscription.Update{{TagID: 2, Enabled: true}}
		mocks.subscriptions.EXPECT().ApplyUpdates(gomock.Any(), int64(1), updates).Return(nil)
		mocks.subscriptions.EXPECT().Subscriptions(gomock.Any(), int64(1)).Return([]subscription.UserTag{
			{TagID: 2, TagName: "algebra", Enabled: true},
		}, nil)

		res := doRequest(t, srv, http.MethodPut, "/quiz/subscriptions", "1",
			`{"updates":[{"tag_id":2,"enabled":true}]}`)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Len(t, decodeBody(t, res)["subscriptions"], 1)
	})

	t.Run("invalid batch maps to 422 and nothing is written", func(t *testing.T) {
		srv, mocks := newTestServer(t)
		mocks.subscriptions.EXPECT().ApplyUpdates(gomock.Any(), int64(1), gomock.Any()).
			Return(quizerr.NewValidationError().Add("tag_9", "no subscription exists for this tag"))

		res := doRequest(t, srv, http.MethodPut, "/quiz/subscriptions", "1",
			`{"updates":[{"tag_id":9,"enabled":true}]}`)
		require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

		fields := decodeBody(t, res)["fields"].(map[string]any)
		assert.Contains(t, fields, "tag_9")
	})
}

func TestQuizHandler_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	res := doRequest(t, srv, http.MethodDelete, "/quiz/subscriptions", "1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestIdentityMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		wantStatus int
	}{
		{name: "missing header", userID: "", wantStatus: http.StatusUnauthorized},
		{name: "non-numeric header", userID: "alice", wantStatus: http.StatusUnauthorized},
		{name: "non-positive id", userID: "0", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			res := doRequest(t, srv, http.MethodGet, "/quiz", tt.userID, "")
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}
