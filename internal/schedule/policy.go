package schedule

import "time"

// Policy decides when a question should be shown next. Implementations are
// pure: prior is the existing schedule (nil on the first-ever judgment) and
// must not be mutated. Which recurrence to use is a deployment choice; the
// core only defines this contract.
type Policy interface {
	Review(prior *Schedule, j Judgment, now time.Time) Outcome
}

// NullPolicy is the default policy. It blends percents with an equal-weight
// average and keeps the question immediately available, deferring any real
// recurrence to a configured policy.
type NullPolicy struct{}

// Review implements Policy.
func (NullPolicy) Review(prior *Schedule, j Judgment, now time.Time) Outcome {
	out := Outcome{
		NextShowAt:        now,
		IntervalUnit:      UnitDays,
		PercentCorrect:    j.PercentCorrect,
		PercentImportance: j.PercentImportance,
	}
	if prior != nil {
		out.IntervalNum = prior.IntervalNum
		out.IntervalUnit = prior.IntervalUnit
		out.PercentCorrect = (prior.PercentCorrect + j.PercentCorrect) / 2
		out.PercentImportance = (prior.PercentImportance + j.PercentImportance) / 2
	}
	return out
}
