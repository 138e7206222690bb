package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/quizme/internal/attempt"
	"github.com/example/quizme/internal/question"
	"github.com/example/quizme/internal/selector"
	"github.com/example/quizme/internal/subscription"
)

func newNextCommand() *cobra.Command {
	var userID int64
	command := &cobra.Command{
		Use:   "next",
		Short: "Show the question the selector would pick for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if userID <= 0 {
				return fmt.Errorf("--user is required")
			}

			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := subscription.NewManager(subscription.NewDBUserTagRepository(db)).
				EnsureSubscriptions(ctx, userID); err != nil {
				return err
			}

			next, err := selector.New(question.NewDBQuestionRepository(db)).Next(ctx, userID)
			if err != nil {
				return err
			}
			if next == nil {
				fmt.Println("no eligible question; enable some tag subscriptions first")
				return nil
			}
			color.Cyan("question %d", next.ID)
			fmt.Println(next.Text)
			return nil
		},
	}
	command.Flags().Int64Var(&userID, "user", 0, "user id to select for")
	return command
}

func newAttemptCommand() *cobra.Command {
	var (
		userID     int64
		questionID int64
		text       string
	)
	command := &cobra.Command{
		Use:   "attempt",
		Short: "Record an attempt and show the answer",
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

			questions := question.NewDBQuestionRepository(db)
			recorder := attempt.NewRecorder(questions, attempt.NewDBAttemptRepository(db))

			a, err := recorder.Record(ctx, userID, questionID, text)
			if err != nil {
				return err
			}
			q, err := questions.FindByID(ctx, questionID)
			if err != nil {
				return err
			}

			color.Green("recorded attempt %d", a.ID)
			fmt.Printf("your attempt: %s\n", a.Text)
			fmt.Printf("answer:       %s\n", q.Answer)
			return nil
		},
	}
	command.Flags().Int64Var(&userID, "user", 0, "user id")
	command.Flags().Int64Var(&questionID, "question", 0, "question id")
	command.Flags().StringVar(&text, "text", "", "attempt text (may be empty)")
	return command
}
