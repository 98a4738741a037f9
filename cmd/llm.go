package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/llm"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/screens/history"
	"github.com/abhisek/mentor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM calls behind each assessment",
	Long: `Inspect the LLM calls made for quizzes, study plans and the tutor.

Calls made during an assessment carry its session id, the same id that
"mentor history" prints, so one run's calls can be listed and costed on
their own with --session.`,
}

// assessmentStep ties a journal purpose label to the step it served.
type assessmentStep struct {
	name    string
	purpose string
	label   string
}

var assessmentSteps = []assessmentStep{
	{"diagnostic", "quiz-" + string(quiz.KindDiagnostic), "Diagnostic quiz"},
	{"plan", "study-plan", "Study plan"},
	{"daily", "quiz-" + string(quiz.KindDaily), "Daily practice"},
	{"final", "quiz-" + string(quiz.KindFinal), "Post-test"},
	{"tutor", "tutor", "Tutor"},
}

func stepNames() []string {
	out := make([]string, len(assessmentSteps))
	for i, s := range assessmentSteps {
		out[i] = s.name
	}
	return out
}

// stepLabel names the step a purpose belongs to. Unknown purposes are
// shown as recorded.
func stepLabel(purpose string) string {
	for _, s := range assessmentSteps {
		if s.purpose == purpose {
			return s.label
		}
	}
	return purpose
}

func purposeForStep(step string) (string, error) {
	for _, s := range assessmentSteps {
		if s.name == step {
			return s.purpose, nil
		}
	}
	return "", fmt.Errorf("unknown step %q: want one of %s", step, strings.Join(stepNames(), ", "))
}

// matchSession resolves a session id or id prefix against the journaled
// assessments.
func matchSession(events []store.AssessmentEvent, prefix string) (string, error) {
	var found []string
	seen := make(map[string]bool)
	for _, e := range events {
		if strings.HasPrefix(e.SessionID, prefix) && !seen[e.SessionID] {
			seen[e.SessionID] = true
			found = append(found, e.SessionID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no assessment session matches %q", prefix)
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("session prefix %q is ambiguous (%d matches)", prefix, len(found))
}

// sessionScope resolves --session and returns the run it names. An empty
// flag means all calls.
func sessionScope(ctx context.Context, repo store.EventRepo, prefix string) (*history.Run, error) {
	if prefix == "" {
		return nil, nil
	}
	events, err := repo.QueryAssessmentEvents(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	id, err := matchSession(events, prefix)
	if err != nil {
		return nil, err
	}
	for _, r := range history.GroupRuns(events) {
		if r.SessionID == id {
			return &r, nil
		}
	}
	return &history.Run{SessionID: id}, nil
}

func shortID(id string) string {
	if id == "" {
		return "-"
	}
	return id[:min(8, len(id))]
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	Example: `  mentor llm list --step daily
  mentor llm list --session 1a2b3c4d`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		step, _ := cmd.Flags().GetString("step")
		session, _ := cmd.Flags().GetString("session")

		opts := store.QueryOpts{Limit: limit}
		if step != "" {
			purpose, err := purposeForStep(step)
			if err != nil {
				return err
			}
			opts.Purpose = purpose
		}

		s, err := openJournal(commandLogging(cmd))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		run, err := sessionScope(ctx, repo, session)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if run != nil {
			opts.SessionID = run.SessionID
			fmt.Fprintf(out, "Session %s  %s\n\n", shortID(run.SessionID), run.Headline())
		}

		events, err := repo.QueryLLMEvents(ctx, opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM calls found.")
			return nil
		}
		writeCallTable(out, events)
		return nil
	},
}

func writeCallTable(w io.Writer, events []store.LLMEvent) {
	fmt.Fprintf(w, "%-5s  %-16s  %-8s  %-15s  %-24s  %11s  %6s  %s\n",
		"ID", "Time", "Session", "Step", "Model", "Tokens", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-8s  %-15s  %-24s  %11s  %6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			shortID(e.SessionID),
			truncate(stepLabel(e.Purpose), 15),
			truncate(e.Model, 24),
			fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
			e.LatencyMs,
			ok,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openJournal(commandLogging(cmd))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("call %d not found", id)
		}
		writeCall(cmd.OutOrStdout(), e)
		return nil
	},
}

func writeCall(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "Call %d, %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Step:      %s (%s)\n", stepLabel(e.Purpose), e.Purpose)
	fmt.Fprintf(w, "Session:   %s\n", shortID(e.SessionID))
	fmt.Fprintf(w, "Model:     %s via %s\n", e.Model, e.Provider)
	fmt.Fprintf(w, "Tokens:    %d in / %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
	if e.Success {
		fmt.Fprintln(w, "Result:    ok")
	} else {
		fmt.Fprintf(w, "Result:    failed: %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"PROMPT", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, strings.Repeat("─", 60))
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
		} else {
			fmt.Fprintln(w, part.body)
		}
	}
}

// stepUsage is token usage rolled up per assessment step.
type stepUsage struct {
	Step         string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// usageBySteps folds per-purpose usage into steps, in assessment order.
// Unknown purposes follow, busiest first.
func usageBySteps(rows []store.LLMUsageByPurpose) []stepUsage {
	byLabel := make(map[string]*stepUsage)
	latency := make(map[string]int64)
	var order []string
	for _, r := range rows {
		label := stepLabel(r.Purpose)
		u, ok := byLabel[label]
		if !ok {
			u = &stepUsage{Step: label}
			byLabel[label] = u
			order = append(order, label)
		}
		u.Calls += r.Calls
		u.InputTokens += r.InputTokens
		u.OutputTokens += r.OutputTokens
		latency[label] += r.AvgLatencyMs * int64(r.Calls)
	}

	rank := make(map[string]int, len(assessmentSteps))
	for i, s := range assessmentSteps {
		rank[s.label] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ri, iok := rank[order[i]]
		rj, jok := rank[order[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return byLabel[order[i]].Calls > byLabel[order[j]].Calls
	})

	out := make([]stepUsage, 0, len(order))
	for _, label := range order {
		u := byLabel[label]
		if u.Calls > 0 {
			u.AvgLatencyMs = latency[label] / int64(u.Calls)
		}
		out = append(out, *u)
	}
	return out
}

// usageOf aggregates individual calls the way the journal's usage queries
// do, for a single session.
func usageOf(events []store.LLMEvent) ([]store.LLMUsageByPurpose, []store.LLMUsageByModel) {
	purposes := make(map[string]*store.LLMUsageByPurpose)
	models := make(map[string]*store.LLMUsageByModel)
	var byPurpose []store.LLMUsageByPurpose
	var byModel []store.LLMUsageByModel
	var purposeOrder, modelOrder []string
	latency := make(map[string]int64)

	for _, e := range events {
		p, ok := purposes[e.Purpose]
		if !ok {
			p = &store.LLMUsageByPurpose{Purpose: e.Purpose}
			purposes[e.Purpose] = p
			purposeOrder = append(purposeOrder, e.Purpose)
		}
		p.Calls++
		p.InputTokens += e.InputTokens
		p.OutputTokens += e.OutputTokens
		latency[e.Purpose] += e.LatencyMs

		m, ok := models[e.Model]
		if !ok {
			m = &store.LLMUsageByModel{Model: e.Model}
			models[e.Model] = m
			modelOrder = append(modelOrder, e.Model)
		}
		m.Calls++
		m.InputTokens += e.InputTokens
		m.OutputTokens += e.OutputTokens
	}

	for _, k := range purposeOrder {
		p := purposes[k]
		p.AvgLatencyMs = latency[k] / int64(p.Calls)
		byPurpose = append(byPurpose, *p)
	}
	for _, k := range modelOrder {
		byModel = append(byModel, *models[k])
	}
	sort.SliceStable(byModel, func(i, j int) bool { return byModel[i].Calls > byModel[j].Calls })
	return byPurpose, byModel
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per assessment step and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")

		s, err := openJournal(commandLogging(cmd))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		out := cmd.OutOrStdout()

		run, err := sessionScope(ctx, repo, session)
		if err != nil {
			return err
		}

		var byPurpose []store.LLMUsageByPurpose
		var byModel []store.LLMUsageByModel
		if run != nil {
			fmt.Fprintf(out, "Session %s  %s\n\n", shortID(run.SessionID), run.Headline())
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{SessionID: run.SessionID})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			byPurpose, byModel = usageOf(events)
		} else {
			if byPurpose, err = repo.LLMUsageByPurpose(ctx); err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if byModel, err = repo.LLMUsageByModel(ctx); err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
		}

		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		writeStepUsage(out, usageBySteps(byPurpose))
		writeCost(out, byModel)
		return nil
	},
}

func writeStepUsage(w io.Writer, usage []stepUsage) {
	fmt.Fprintln(w, "Usage by Step")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Step", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var calls, in, outTok int
	for _, u := range usage {
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Step, 16), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, outTok, in+outTok)
}

func writeCost(w io.Writer, models []store.LLMUsageByModel) {
	if len(models) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var total float64
	var unknown []string
	for _, mu := range models {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknown = append(unknown, mu.Model)
			fmt.Fprintf(w, "%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		total += c
		fmt.Fprintf(w, "%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, formatCost(c))
	}

	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-32s  %12s  %10s\n", label, "", formatCost(total))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	steps := strings.Join(stepNames(), ", ")
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().String("step", "", "Only calls for one step: "+steps)
	llmListCmd.Flags().StringP("session", "s", "", "Only calls for one assessment (id or prefix from mentor history)")
	llmStatsCmd.Flags().StringP("session", "s", "", "Only usage for one assessment (id or prefix from mentor history)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
