package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/ui/components"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the 30-day risk forecast for given scores",
	Example: `  mentor forecast --diagnostic 4
  mentor forecast --diagnostic 4 --daily 1=5,2=3`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().Int("diagnostic", 0, fmt.Sprintf("Diagnostic score (0-%d)", forecast.DiagnosticMax))
	forecastCmd.Flags().String("daily", "", fmt.Sprintf("Practice scores as day=score pairs, e.g. 1=5,2=3 (score 0-%d)", forecast.PracticeMax))
}

// parseDaily parses "d=s,d=s" into a day → score map.
func parseDaily(s string) (map[int]int, error) {
	out := make(map[int]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		dayStr, scoreStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid practice score %q: want day=score", pair)
		}
		day, err := strconv.Atoi(strings.TrimSpace(dayStr))
		if err != nil || day < 1 || day > forecast.Horizon {
			return nil, fmt.Errorf("invalid day %q: want 1-%d", dayStr, forecast.Horizon)
		}
		score, err := strconv.Atoi(strings.TrimSpace(scoreStr))
		if err != nil || score < 0 || score > forecast.PracticeMax {
			return nil, fmt.Errorf("invalid score %q for day %d: want 0-%d", scoreStr, day, forecast.PracticeMax)
		}
		out[day] = score
	}
	return out, nil
}

func runForecast(cmd *cobra.Command, args []string) error {
	diag, _ := cmd.Flags().GetInt("diagnostic")
	if diag < 0 || diag > forecast.DiagnosticMax {
		return fmt.Errorf("diagnostic score %d outside 0-%d", diag, forecast.DiagnosticMax)
	}
	dailyFlag, _ := cmd.Flags().GetString("daily")
	daily, err := parseDaily(dailyFlag)
	if err != nil {
		return err
	}

	curve := forecast.RiskCurve(diag, daily)
	sum := forecast.Summarize(curve)
	rating := forecast.Rate(float64(diag) / forecast.DiagnosticMax * 100)

	fmt.Printf("Diagnostic %d/%d: grade %s, %s risk, predicted %s\n\n",
		diag, forecast.DiagnosticMax, rating.Grade, rating.Risk, rating.Prediction())
	fmt.Println(components.RiskChart(curve, 8, 0))
	fmt.Println("Trend   " + components.Sparkline(curve))
	fmt.Println()

	for d, risk := range curve {
		marker := ""
		if score, ok := daily[d+1]; ok {
			marker = fmt.Sprintf("  practice %d/%d", score, forecast.PracticeMax)
		}
		fmt.Printf("Day %2d  %5.1f%%%s\n", d+1, risk, marker)
	}
	fmt.Printf("\nRisk %.1f%% → %.1f%% (−%.1f points), peak on day %d\n", sum.Start, sum.End, sum.Reduction, sum.Peak)
	return nil
}
