package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/quizme/internal/question"
	"github.com/example/quizme/internal/quizerr"
	"github.com/example/quizme/internal/tag"
)

func newQuestionCommand() *cobra.Command {
	questionCommand := &cobra.Command{
		Use:   "question",
		Short: "Manage the question catalog",
	}
	questionCommand.AddCommand(
		newQuestionAddCommand(),
		newQuestionListCommand(),
		newQuestionImportCommand(),
		newQuestionLinkCommand(),
		newQuestionUnlinkCommand(),
	)
	return questionCommand
}

func newQuestionAddCommand() *cobra.Command {
	var tagNames []string
	command := &cobra.Command{
		Use:   "add [question] [answer]",
		Short: "Add a question with its answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			tagIDs, err := resolveTagIDs(ctx, db, tagNames)
			if err != nil {
				return err
			}

			q := &question.Question{Text: args[0], Answer: args[1]}
			if err := question.NewDBQuestionRepository(db).Create(ctx, q, tagIDs); err != nil {
				return err
			}
			color.Green("created question %d", q.ID)
			return nil
		},
	}
	command.Flags().StringSliceVar(&tagNames, "tags", nil, "tag names to link the question to")
	return command
}

func newQuestionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			questions, err := question.NewDBQuestionRepository(db).FindAll(ctx)
			if err != nil {
				return err
			}
			if len(questions) == 0 {
				fmt.Println("no questions")
				return nil
			}
			for _, q := range questions {
				fmt.Printf("%d\t%s\n", q.ID, q.Text)
			}
			return nil
		},
	}
}

// importFile is the YAML shape accepted by `question import`.
type importFile struct {
	Questions []struct {
		Question string   `yaml:"question"`
		Answer   string   `yaml:"answer"`
		Tags     []string `yaml:"tags"`
	} `yaml:"questions"`
}

func newQuestionImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import questions from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}
			var file importFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("yaml.Unmarshal(%s) > %w", args[0], err)
			}

			db, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			questions := question.NewDBQuestionRepository(db)
			for i, entry := range file.Questions {
				if entry.Question == "" || entry.Answer == "" {
					return fmt.Errorf("entry %d: question and answer are both required", i)
				}
				tagIDs, err := resolveTagIDs(ctx, db, entry.Tags)
				if err != nil {
					return fmt.Errorf("entry %d: %w", i, err)
				}
				q := &question.Question{Text: entry.Question, Answer: entry.Answer}
				if err := questions.Create(ctx, q, tagIDs); err != nil {
					return fmt.Errorf("entry %d: %w", i, err)
				}
			}
			color.Green("imported %d questions", len(file.Questions))
			return nil
		},
	}
}

func newQuestionLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link [question-id] [tag-name]",
		Short: "Enable a question under a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setQuestionLink(cmd, args, true)
		},
	}
}

func newQuestionUnlinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink [question-id] [tag-name]",
		Short: "Disable a question under a tag without deleting the link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setQuestionLink(cmd, args, false)
		},
	}
}

func setQuestionLink(cmd *cobra.Command, args []string, enabled bool) error {
	ctx := cmd.Context()
	questionID, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := tag.NewDBTagRepository(db).FindByName(ctx, args[1])
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("tag %q does not exist", args[1])
	}

	questions := question.NewDBQuestionRepository(db)
	err = questions.SetLinkEnabled(ctx, questionID, t.ID, enabled)
	if errors.Is(err, quizerr.ErrNotFound) && enabled {
		// No link yet: create one instead of failing.
		link := &question.QuestionTag{QuestionID: questionID, TagID: t.ID, Enabled: true}
		if createErr := questions.CreateLink(ctx, link); createErr != nil {
			return createErr
		}
		err = nil
	}
	if err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	color.Green("question %d %s under tag %s", questionID, state, t.Name)
	return nil
}

func resolveTagIDs(ctx context.Context, db *sqlx.DB, names []string) ([]int64, error) {
	tags := tag.NewDBTagRepository(db)
	tagIDs := make([]int64, 0, len(names))
	for _, name := range names {
		t, err := tags.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("tag %q does not exist", name)
		}
		tagIDs = append(tagIDs, t.ID)
	}
	return tagIDs, nil
}
