package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/quizme/internal/tag"
)

func newTagCommand() *cobra.Command {
	tagCommand := &cobra.Command{
		Use:   "tag",
		Short: "Manage catalog tags",
	}
	tagCommand.AddCommand(newTagAddCommand(), newTagListCommand())
	return tagCommand
}

func newTagAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a tag to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			tags := tag.NewDBTagRepository(db)
			name := args[0]
			if existing, err := tags.FindByName(ctx, name); err != nil {
				return err
			} else if existing != nil {
				return fmt.Errorf("tag %q already exists with id %d", name, existing.ID)
			}

			created := &tag.Tag{Name: name}
			if err := tags.Create(ctx, created); err != nil {
				return err
			}
			color.Green("created tag %d: %s", created.ID, created.Name)
			return nil
		},
	}
}

func newTagListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			tags, err := tag.NewDBTagRepository(db).FindAll(ctx)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Println("no tags")
				return nil
			}
			for _, t := range tags {
				fmt.Printf("%d\t%s\n", t.ID, t.Name)
			}
			return nil
		},
	}
}
