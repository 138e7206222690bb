package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/quizme/internal/user"
)

func newUserCommand() *cobra.Command {
	userCommand := &cobra.Command{
		Use:   "user",
		Short: "Manage user records",
	}
	userCommand.AddCommand(newUserAddCommand())
	return userCommand
}

func newUserAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [email]",
		Short: "Add a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			users := user.NewDBUserRepository(db)
			email := args[0]
			if existing, err := users.FindByEmail(ctx, email); err != nil {
				return err
			} else if existing != nil {
				return fmt.Errorf("user %q already exists with id %d", email, existing.ID)
			}

			created, err := users.Create(ctx, email)
			if err != nil {
				return err
			}
			color.Green("created user %d: %s", created.ID, created.Email)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", raw)
	}
	return id, nil
}
