// Package sm2 implements an SM-2 flavoured review policy. Easiness is not
// stored per row; it is derived from the running percent-correct average, so
// the policy needs nothing beyond the schedule columns.
package sm2

import (
	"math"
	"time"

	"github.com/example/quizme/internal/schedule"
)

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3

	// Weight of the newest judgment in the running percent averages.
	smoothing = 0.3

	lapseMultiplier = 0.5
)

// Policy grows the review interval on good judgments and shrinks it on bad
// ones. Intervals are always expressed in days.
type Policy struct{}

var _ schedule.Policy = Policy{}

// Review implements schedule.Policy.
func (Policy) Review(prior *schedule.Schedule, j schedule.Judgment, now time.Time) schedule.Outcome {
	out := schedule.Outcome{
		IntervalUnit:      schedule.UnitDays,
		PercentCorrect:    j.PercentCorrect,
		PercentImportance: j.PercentImportance,
	}
	var lastInterval float64
	if prior != nil {
		out.PercentCorrect = blend(prior.PercentCorrect, j.PercentCorrect)
		out.PercentImportance = blend(prior.PercentImportance, j.PercentImportance)
		lastInterval = prior.IntervalNum
	}

	out.IntervalNum = nextInterval(lastInterval, quality(j.PercentCorrect), easiness(out.PercentCorrect))
	out.NextShowAt = now.Add(schedule.UnitDays.Duration(out.IntervalNum))
	return out
}

func blend(prior, current float64) float64 {
	return prior*(1-smoothing) + current*smoothing
}

// quality maps a 0-100 correctness rating onto the 0-5 SM-2 grade.
func quality(percentCorrect float64) int {
	q := int(math.Round(percentCorrect / 20))
	if q > 5 {
		return 5
	}
	if q < 0 {
		return 0
	}
	return q
}

// easiness interpolates the easiness factor from the running correctness
// average: a question answered perfectly every time sits at the default
// factor, one never answered correctly sits at the minimum.
func easiness(percentCorrect float64) float64 {
	ef := MinEasinessFactor + percentCorrect/100*(DefaultEasinessFactor-MinEasinessFactor)
	return math.Max(math.Min(ef, DefaultEasinessFactor), MinEasinessFactor)
}

func nextInterval(lastInterval float64, quality int, ef float64) float64 {
	if quality < 3 {
		next := math.Ceil(lastInterval * lapseMultiplier)
		if next < 1 {
			return 1
		}
		return next
	}
	switch {
	case lastInterval < 1:
		return 1
	case lastInterval < 6:
		return 6
	default:
		return math.Ceil(lastInterval * ef)
	}
}
