package assess

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/ui/components"
	"github.com/abhisek/mentor/internal/ui/layout"
	"github.com/abhisek/mentor/internal/ui/theme"
	"github.com/abhisek/mentor/internal/workflow"
)

// planWindow is the number of plan days listed at once.
const planWindow = 10

func (s *Screen) View(width, height int) string {
	var body string
	switch {
	case s.quizKind != quizNone:
		body = s.runner.View(width)
	case s.state.Phase == workflow.PhaseInput:
		body = s.viewInput(width)
	case s.state.Phase == workflow.PhaseQuiz:
		body = s.viewDiagnostic()
	default:
		body = s.viewResults(width, height)
	}

	var footer []string
	if s.promptKind != promptNone {
		footer = append(footer, s.prompt.View())
	}
	if s.busy {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Accent).Render("Working…"))
	}
	if s.notice != "" {
		footer = append(footer, theme.Hint.Render(s.notice))
	}
	if s.errMsg != "" {
		footer = append(footer, theme.ErrorText.Render(s.errMsg))
	}
	if len(footer) > 0 {
		body += "\n\n" + strings.Join(footer, "\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (s *Screen) viewInput(width int) string {
	st := s.state
	var b strings.Builder

	p := st.Profile
	name := p.Name
	if name == "" {
		name = "(no name, press p)"
	}
	fmt.Fprintf(&b, "%s  %s\n\n",
		theme.Title.Render(name),
		theme.Subtitle.Render(fmt.Sprintf("roll %s · class %s · attendance %d%%", orDash(p.RollNo), p.Class, p.Attendance)))

	if len(st.Subjects) == 0 {
		b.WriteString(theme.Hint.Render("No subjects yet. Press a to add some."))
		return b.String()
	}

	b.WriteString(theme.Body.Bold(true).Render("Unit test marks") + "\n\n")
	barWidth := max(min(width-60, 30), 10)
	for i, sub := range st.Subjects {
		prefix := "  "
		if i == s.cursor {
			prefix = theme.Selected.Render("▸ ")
		}
		b.WriteString(prefix + components.MarkBar(sub, 16, barWidth, i == s.cursor) + "\n")
	}
	if weakest, err := st.Subjects.Weakest(); err == nil {
		b.WriteString("\n" + theme.Hint.Render("Weakest so far: "+weakest))
	}
	return b.String()
}

func (s *Screen) viewDiagnostic() string {
	st := s.state
	if st.DiagnosticPending() {
		msg := "The diagnostic quiz could not be generated."
		if st.LastFailure != nil {
			msg += "\n" + st.LastFailure.Message
		}
		return theme.ErrorText.Render("Diagnostic: "+st.Weakest) + "\n\n" + theme.Body.Render(msg) +
			"\n\n" + theme.Hint.Render("Press r to try again or Enter to skip with a score of 0.")
	}
	return theme.Title.Render("Diagnostic: "+st.Weakest) + "\n\n" +
		theme.Body.Render(fmt.Sprintf("%d questions are ready.", len(st.Diagnostic.Questions))) + "\n\n" +
		theme.Hint.Render("Press Enter to continue the quiz.")
}

func (s *Screen) viewResults(width, height int) string {
	st := s.state
	var sections []string

	pre := forecast.Rate(st.Diagnostic.Percent())
	head := theme.Title.Render("Weakest subject: "+st.Weakest) + "\n" +
		theme.Body.Render(fmt.Sprintf("Diagnostic %d/%d  ·  grade %s  ·  risk %s  ·  %s",
			st.Diagnostic.Score, st.Diagnostic.Total(), pre.Grade, pre.Risk, pre.Prediction()))
	if delta, ok := st.Improvement(); ok {
		post := forecast.Rate(st.Post.Percent())
		style := theme.Correct
		if delta < 0 {
			style = theme.Incorrect
		}
		head += "\n" + theme.Body.Render(fmt.Sprintf("Post-test  %d/%d  ·  grade %s  ·  risk %s  ·  %s   ",
			st.Post.Score, st.Post.Total(), post.Grade, post.Risk, post.Prediction())) +
			style.Render(fmt.Sprintf("improvement %+d", delta))
	}
	sections = append(sections, head)

	curve := st.RiskCurve()
	sum := forecast.Summarize(curve)
	chartHeight := 8
	if layout.IsCompactHeight(height + 8) {
		chartHeight = 4
	}
	chart := theme.Body.Bold(true).Render("30-day risk forecast") +
		theme.Subtitle.Render(fmt.Sprintf("   %.1f%% → %.1f%%", sum.Start, sum.End)) + "\n" +
		components.RiskChart(curve, chartHeight, st.SelectedDay)
	sections = append(sections, chart)

	switch st.Stage {
	case workflow.StagePlanPending:
		sections = append(sections, theme.Hint.Render("Press g for a 30-day study plan, or f to go straight to the post-test."))
	case workflow.StagePlanReady:
		sections = append(sections, s.viewPlan(width))
	case workflow.StagePostTestPending:
		if len(st.Post.Questions) == 0 {
			msg := "The post-test could not be generated."
			if st.LastFailure != nil {
				msg += " " + st.LastFailure.Message
			}
			sections = append(sections, theme.ErrorText.Render(msg)+"\n"+theme.Hint.Render("Press r to retry or Enter to skip."))
		} else {
			sections = append(sections, theme.Hint.Render(fmt.Sprintf("Post-test ready: %d questions. Press Enter to start.", len(st.Post.Questions))))
		}
	case workflow.StagePostTestReady:
		sections = append(sections, theme.Hint.Render("Assessment complete. Press x to export a report or f to retake the post-test."))
	}
	return strings.Join(sections, "\n\n")
}

func (s *Screen) viewPlan(width int) string {
	st := s.state
	selected := max(st.SelectedDay, 1)

	var b strings.Builder
	bar := components.ProgressBar{Label: "Practised", Done: len(st.DailyScores), Total: len(st.Plan), Width: min(width-8, 60)}
	b.WriteString(bar.View() + "\n\n")

	start := min(max(selected-planWindow/2, 1), max(len(st.Plan)-planWindow+1, 1))
	end := min(start+planWindow-1, len(st.Plan))
	for day := start; day <= end; day++ {
		topic := st.Plan[day-1]
		score := "   "
		if v, ok := st.DailyScores[day]; ok {
			score = fmt.Sprintf("%d/%d", v, st.DailyTotal(day))
		}
		line := fmt.Sprintf("Day %2d  %s  %s", day, score, topic)
		if st.Daily != nil && st.Daily.Day == day {
			line += "  (quiz open)"
		}
		if day == selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
