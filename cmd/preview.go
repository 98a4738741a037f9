package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated quizzes and study plans (no journal)",
	Long: `Generate content for a subject without starting an assessment.

This is a stateless developer tool: nothing is written to the journal.
Useful for evaluating question quality and topic lists.`,
}

var previewQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate and interactively answer a quiz",
	RunE:  runPreviewQuiz,
}

var previewTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Generate a 30-day topic list",
	RunE:  runPreviewTopics,
}

func init() {
	for _, c := range []*cobra.Command{previewQuizCmd, previewTopicsCmd} {
		c.Flags().String("subject", "", "Subject name (required)")
		_ = c.MarkFlagRequired("subject")
	}
	previewQuizCmd.Flags().String("topic", "", "Narrow the quiz to one topic")
	previewQuizCmd.Flags().String("kind", "diagnostic", "Quiz kind: diagnostic, daily or final")
	previewQuizCmd.Flags().Int("count", 5, "Number of questions to generate")

	previewCmd.AddCommand(previewQuizCmd)
	previewCmd.AddCommand(previewTopicsCmd)
}

func parseKind(s string) (quiz.Kind, error) {
	switch k := quiz.Kind(strings.ToLower(s)); k {
	case quiz.KindDiagnostic, quiz.KindDaily, quiz.KindFinal:
		return k, nil
	}
	return "", fmt.Errorf("invalid kind %q: must be diagnostic, daily or final", s)
}

func runPreviewQuiz(cmd *cobra.Command, args []string) error {
	v := commandLogging(cmd)
	kind, err := parseKind(v.GetString("kind"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, err := buildServices(ctx, v, nil)
	if err != nil {
		return err
	}
	if err := svc.requireProvider(); err != nil {
		return err
	}

	req := quiz.Request{
		Subject: v.GetString("subject"),
		Topic:   v.GetString("topic"),
		Class:   v.GetString("class"),
		Count:   v.GetInt("count"),
		Kind:    kind,
	}
	fmt.Printf("Generating %d %s questions for %s (class %s)...\n\n", req.Count, kind, req.Subject, req.Class)

	questions, err := svc.machine.Questions.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]string, len(questions))
	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %s) %s\n", quiz.OptionLabel(j), opt)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answers[i] = quiz.ResolveAnswer(q, scanner.Text())
		switch {
		case answers[i] == "":
			fmt.Println("(skipped)")
		case quiz.CheckAnswer(answers[i], q):
			fmt.Println("\033[32m✓ Correct!\033[0m")
		default:
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", quiz.Score(questions, answers), len(questions))
	return nil
}

func runPreviewTopics(cmd *cobra.Command, args []string) error {
	v := commandLogging(cmd)
	ctx := cmd.Context()
	svc, err := buildServices(ctx, v, nil)
	if err != nil {
		return err
	}
	if err := svc.requireProvider(); err != nil {
		return err
	}

	subject := v.GetString("subject")
	topics, err := svc.machine.Topics.Generate(ctx, subject, v.GetString("class"))
	if err != nil {
		// The fallback list still comes back; show it with the error.
		fmt.Fprintln(os.Stderr, "topic generation failed:", err)
	}
	for i, t := range topics {
		fmt.Printf("Day %2d: %s\n", i+1, t)
	}
	return nil
}
