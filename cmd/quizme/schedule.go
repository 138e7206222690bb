package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/quizme/internal/schedule"
	"github.com/example/quizme/internal/schedule/sm2"
)

// policyFlag is a pflag.Value restricted to the known review policies.
type policyFlag string

const (
	policyNull policyFlag = "null"
	policySM2  policyFlag = "sm2"
)

var (
	_           pflag.Value = (*policyFlag)(nil)
	allPolicies             = []policyFlag{policyNull, policySM2}
)

func (p *policyFlag) String() string {
	return string(*p)
}

func (p *policyFlag) Set(value string) error {
	for _, known := range allPolicies {
		if value == string(known) {
			*p = known
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", joinPolicies())
}

func (p *policyFlag) Type() string {
	return "policy"
}

func (p policyFlag) policy() schedule.Policy {
	if p == policySM2 {
		return sm2.Policy{}
	}
	return schedule.NullPolicy{}
}

func joinPolicies() string {
	names := make([]string, 0, len(allPolicies))
	for _, p := range allPolicies {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func newScheduleCommand() *cobra.Command {
	var (
		userID     int64
		questionID int64
		correct    float64
		importance float64
		policy     = policyNull
	)
	command := &cobra.Command{
		Use:   "schedule",
		Short: "Judge a question and advance its review schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if userID <= 0 || questionID <= 0 {
				return fmt.Errorf("--user and --question are required")
			}

			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			scheduler := schedule.NewScheduler(schedule.NewDBScheduleRepository(db), policy.policy(), nil)
			s, err := scheduler.Update(ctx, userID, questionID, schedule.Judgment{
				PercentCorrect:    correct,
				PercentImportance: importance,
			})
			if err != nil {
				return err
			}

			color.Green("schedule for question %d updated", s.QuestionID)
			fmt.Printf("show next: %s (in %.1f %s)\n", s.DateShowNext.Format("2006-01-02 15:04"), s.IntervalNum, s.IntervalUnit)
			fmt.Printf("correct:   %.1f%%  importance: %.1f%%\n", s.PercentCorrect, s.PercentImportance)
			return nil
		},
	}
	command.Flags().Int64Var(&userID, "user", 0, "user id")
	command.Flags().Int64Var(&questionID, "question", 0, "question id")
	command.Flags().Float64Var(&correct, "correct", 0, "correctness rating, 0-100")
	command.Flags().Float64Var(&importance, "importance", 0, "importance rating, 0-100")
	command.Flags().Var(&policy, "policy", fmt.Sprintf("review policy, one of %s", joinPolicies()))
	return command
}
