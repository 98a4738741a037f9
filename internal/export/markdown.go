package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mentor/internal/forecast"
)

// MarkdownExporter writes the summary as a Markdown document.
type MarkdownExporter struct{}

func (MarkdownExporter) Ext() string         { return ".md" }
func (MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }

func (MarkdownExporter) Export(w io.Writer, s Summary) error {
	b := bufio.NewWriter(w)

	fmt.Fprintf(b, "# Assessment report: %s\n\n", orDash(s.Profile.Name))
	fmt.Fprintf(b, "- Roll no: %s\n", orDash(s.Profile.RollNo))
	fmt.Fprintf(b, "- Class: %s\n", orDash(s.Profile.Class))
	fmt.Fprintf(b, "- Attendance: %d%%\n", s.Profile.Attendance)
	fmt.Fprintf(b, "- Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04"))

	if len(s.Subjects) > 0 {
		b.WriteString("## Unit tests\n\n")
		b.WriteString("| Subject | UT1 | UT2 | Average |\n|---|---:|---:|---:|\n")
		for _, sub := range s.Subjects {
			name := escapeCell(sub.Name)
			if sub.Name == s.Weakest {
				name = "**" + name + "**"
			}
			fmt.Fprintf(b, "| %s | %d | %d | %.1f |\n", name, sub.UT1, sub.UT2, sub.Average)
		}
		b.WriteString("\n")
	}

	if avg, ok := s.WeakestAverage(); ok {
		fmt.Fprintf(b, "Weakest subject: **%s** (average %.1f)\n\n", s.Weakest, avg)
	}

	if s.Diagnostic != nil {
		b.WriteString("## Results\n\n")
		b.WriteString("| | Score | Percent | Grade | Risk | Prediction |\n|---|---:|---:|:-:|:-:|:-:|\n")
		writeResultRow(b, "Diagnostic", s.Diagnostic, s.Before)
		if s.Post != nil {
			writeResultRow(b, "Post-test", s.Post, s.After)
		}
		b.WriteString("\n")
		if s.Improvement != nil {
			fmt.Fprintf(b, "Improvement: **%+d**\n\n", *s.Improvement)
		}
	}

	if len(s.Curve) > 0 {
		b.WriteString("## Risk forecast\n\n")
		fmt.Fprintf(b, "Risk falls from %.1f%% on day 1 to %.1f%% on day %d (%.1f points).\n\n",
			s.Forecast.Start, s.Forecast.End, len(s.Curve), s.Forecast.Reduction)
		b.WriteString("| Day | Risk % |\n|---:|---:|\n")
		for i, r := range s.Curve {
			if i == 0 || (i+1)%5 == 0 {
				fmt.Fprintf(b, "| %d | %.1f |\n", i+1, r)
			}
		}
		b.WriteString("\n")
	}

	if len(s.Plan) > 0 {
		fmt.Fprintf(b, "## Study plan (%d of %d days practised)\n\n", s.PracticeDays(), len(s.Plan))
		b.WriteString("| Day | Topic | Practice |\n|---:|---|---:|\n")
		for _, d := range s.Plan {
			practice := "-"
			if d.Practice != nil {
				practice = fmt.Sprintf("%d", *d.Practice)
			}
			fmt.Fprintf(b, "| %d | %s | %s |\n", d.Day, escapeCell(d.Topic), practice)
		}
	}

	if err := b.Flush(); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

func writeResultRow(w io.Writer, label string, q *QuizLine, r *forecast.Rating) {
	grade, risk, pred := "-", "-", "-"
	if r != nil {
		grade, risk, pred = string(r.Grade), string(r.Risk), r.Prediction()
	}
	fmt.Fprintf(w, "| %s | %d/%d | %.0f%% | %s | %s | %s |\n", label, q.Score, q.Total, q.Percent, grade, risk, pred)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
