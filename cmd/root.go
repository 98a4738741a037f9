package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/mentor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Find your weakest subject and practise it",
	Long: `Mentor: terminal assessment coach for school students (classes 9-12).

Enter unit test marks, take a diagnostic quiz on the weakest subject, follow a
30-day study plan with daily practice quizzes and measure the improvement with
a post-test.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite journal file (overrides MENTOR_DB env var)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")

	pf.String("llm-provider", "", "LLM provider: groq, anthropic, openai, gemini, openrouter or mock")
	for _, p := range []string{"groq", "anthropic", "openai", "gemini", "openrouter"} {
		pf.String(p+"-api-key", "", "API key for "+p)
		pf.String(p+"-model", "", "Model for "+p)
	}
	pf.String("openai-base-url", "", "Base URL for an OpenAI-compatible endpoint")
	pf.Duration("llm-timeout", 0, "Timeout for one LLM call including retries")
	pf.Int("llm-retries", 0, "Attempts per LLM call")

	pf.String("class", "10", "Default school class (9-12) for generated content")
	pf.Int("diagnostic-count", 10, "Questions in the diagnostic quiz")
	pf.Int("daily-count", 5, "Questions in each daily practice quiz")
	pf.Int("final-count", 10, "Questions in the post-test")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs the default slog handler writing to w.
func setupLogging(v *viper.Viper, w io.Writer) {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(w, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MENTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mentor")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mentor")
	v.AddConfigPath("/etc/mentor")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// resolveDBPath returns the journal path using --db or MENTOR_DB, then
// the default XDG path.
func resolveDBPath(v *viper.Viper) (string, error) {
	if p := v.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openJournal opens the journal named by v.
func openJournal(v *viper.Viper) (*store.Store, error) {
	dbPath, err := resolveDBPath(v)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// commandLogging configures stderr logging for non-interactive commands.
func commandLogging(cmd *cobra.Command) *viper.Viper {
	v := viperForCmd(cmd)
	setupLogging(v, os.Stderr)
	return v
}
