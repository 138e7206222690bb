package question

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/quizme/internal/quizerr"
)

func newRepoWithMock(t *testing.T) (*DBQuestionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDBQuestionRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBQuestionRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		id        int64
		setupMock func(mock sqlmock.Sqlmock)
		want      *Question
		wantErr   bool
	}{
		{
			name: "found",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "question", "answer", "created_at", "updated_at"}).
					AddRow(1, "What is 6*7?", "42", now, now)
				mock.ExpectQuery("SELECT \\* FROM questions WHERE id = \\?").
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			want: &Question{ID: 1, Text: "What is 6*7?", Answer: "42", CreatedAt: now, UpdatedAt: now},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM questions WHERE id = \\?").
					WithArgs(int64(99)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "question", "answer", "created_at", "updated_at"}))
			},
			want: nil,
		},
		{
			name: "db error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM questions WHERE id = \\?").
					WithArgs(int64(1)).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBQuestionRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		question  *Question
		tagIDs    []int64
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name:     "inserts question with links",
			question: &Question{Text: "What is 6*7?", Answer: "42"},
			tagIDs:   []int64{2, 3},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO questions").
					WithArgs("What is 6*7?", "42").
					WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectExec("INSERT INTO question_tags").
					WithArgs(int64(5), int64(2)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO question_tags").
					WithArgs(int64(5), int64(3)).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
			wantID: 5,
		},
		{
			name:     "rolls back when link insert fails",
			question: &Question{Text: "What is 6*7?", Answer: "42"},
			tagIDs:   []int64{2},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO questions").
					WithArgs("What is 6*7?", "42").
					WillReturnResult(sqlmock.NewResult(5, 1))
				mock.ExpectExec("INSERT INTO question_tags").
					WithArgs(int64(5), int64(2)).
					WillReturnError(fmt.Errorf("foreign key constraint fails"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.question, tt.tagIDs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, tt.question.ID)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBQuestionRepository_FindCandidates(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	candidateColumns := []string{"id", "question", "answer", "created_at", "updated_at", "last_attempt_at"}

	tests := []struct {
		name      string
		userID    int64
		setupMock func(mock sqlmock.Sqlmock)
		want      []Candidate
		wantErr   bool
	}{
		{
			name:   "mix of attempted and unattempted",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(candidateColumns).
					AddRow(1, "Q1", "A1", created, created, nil).
					AddRow(2, "Q2", "A2", created, created, now)
				mock.ExpectQuery("SELECT q\\.id, q\\.question, q\\.answer").
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			want: []Candidate{
				{Question: Question{ID: 1, Text: "Q1", Answer: "A1", CreatedAt: created, UpdatedAt: created}},
				{Question: Question{ID: 2, Text: "Q2", Answer: "A2", CreatedAt: created, UpdatedAt: created}, LastAttemptAt: &now},
			},
		},
		{
			name:   "no candidates",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT q\\.id, q\\.question, q\\.answer").
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(candidateColumns))
			},
			want: nil,
		},
		{
			name:   "db error",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT q\\.id, q\\.question, q\\.answer").
					WithArgs(int64(1)).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.setupMock(mock)

			got, err := repo.FindCandidates(context.Background(), tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBQuestionRepository_SetLinkEnabled(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "disables a link",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE question_tags SET enabled = \\?").
					WithArgs(false, int64(5), int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing link",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE question_tags SET enabled = \\?").
					WithArgs(false, int64(5), int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: quizerr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.setupMock(mock)

			err := repo.SetLinkEnabled(context.Background(), 5, 2, false)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
