package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindmorph/mindmorph/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Inspect the built-in question banks",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		answers, _ := cmd.Flags().GetBool("answers")

		subjects := quiz.Subjects
		if subject != "" {
			subjects = []quiz.Subject{quiz.Subject(subject)}
		}

		banks, err := quiz.LoadBanks()
		if err != nil {
			return fmt.Errorf("load question banks: %w", err)
		}
		for i, s := range subjects {
			bank, err := banks.Get(s)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			printBank(cmd.OutOrStdout(), bank, answers)
		}
		return nil
	},
}

func init() {
	quizListCmd.Flags().String("subject", "", "Only list this subject (math, science, english, life-skills)")
	quizListCmd.Flags().Bool("answers", false, "Mark the correct option")
	quizCmd.AddCommand(quizListCmd)
}

func printBank(w io.Writer, b *quiz.Bank, answers bool) {
	fmt.Fprintf(w, "%s (%s) · %s · %d questions\n", b.Title, b.Subject, b.Topic, len(b.Questions))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, q := range b.Questions {
		fmt.Fprintf(w, "%2d. [%s] %s\n", q.ID, q.Difficulty, q.Prompt)
		for j, opt := range q.Options {
			mark := " "
			if answers && j == q.Correct {
				mark = "✓"
			}
			fmt.Fprintf(w, "     %s %c) %s\n", mark, 'A'+j, opt)
		}
	}
}
