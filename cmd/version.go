package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, build and active settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, _ := debug.ReadBuildInfo()
		return writeVersion(cmd.OutOrStdout(), commandLogging(cmd), info)
	},
}

// buildDetails pulls the toolchain and VCS stamp out of the binary.
func buildDetails(info *debug.BuildInfo) (goVersion, revision string) {
	if info == nil {
		return "unknown", ""
	}
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value[:min(12, len(s.Value))]
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision != "" && modified {
		revision += " (modified)"
	}
	return info.GoVersion, revision
}

func writeVersion(w io.Writer, v *viper.Viper, info *debug.BuildInfo) error {
	goVersion, revision := buildDetails(info)
	fmt.Fprintln(w, "mentor", version)
	fmt.Fprintln(w, "go:       ", goVersion)
	if revision != "" {
		fmt.Fprintln(w, "revision: ", revision)
	}

	cfg, err := workflowConfig(v)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(v)
	if err != nil {
		dbPath = "unavailable: " + err.Error()
	}
	llmCfg := llmConfig(v)
	provider := llmCfg.Provider
	if err := llmCfg.Validate(); err != nil {
		provider += " (not configured, offline fallbacks)"
	}
	fmt.Fprintln(w, "journal:  ", dbPath)
	fmt.Fprintln(w, "provider: ", provider)
	fmt.Fprintf(w, "quizzes:   diagnostic %d, daily %d, post-test %d, class %s\n",
		cfg.DiagnosticCount, cfg.DailyCount, cfg.FinalCount, cfg.Class)
	return nil
}
