package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullPolicy_Review(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		prior *Schedule
		j     Judgment
		want  Outcome
	}{
		{
			name: "first judgment takes the ratings as given",
			j:    Judgment{PercentCorrect: 80, PercentImportance: 40},
			want: Outcome{
				NextShowAt:        now,
				IntervalUnit:      UnitDays,
				PercentCorrect:    80,
				PercentImportance: 40,
			},
		},
		{
			name: "later judgments average with the stored percents",
			prior: &Schedule{
				PercentCorrect:    100,
				PercentImportance: 20,
				IntervalNum:       3,
				IntervalUnit:      UnitHours,
			},
			j: Judgment{PercentCorrect: 50, PercentImportance: 60},
			want: Outcome{
				NextShowAt:        now,
				IntervalNum:       3,
				IntervalUnit:      UnitHours,
				PercentCorrect:    75,
				PercentImportance: 40,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NullPolicy{}.Review(tt.prior, tt.j, now))
		})
	}
}

func TestUnit_Duration(t *testing.T) {
	assert.Equal(t, 90*time.Second, UnitMinutes.Duration(1.5))
	assert.Equal(t, 2*time.Hour, UnitHours.Duration(2))
	assert.Equal(t, 24*time.Hour, UnitDays.Duration(1))
	assert.Equal(t, 14*24*time.Hour, UnitWeeks.Duration(2))
	assert.Equal(t, time.Duration(0), Unit("fortnights").Duration(3))
}
