package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment as a JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "Allowed CORS origins")
	serveCmd.Flags().Duration("request-timeout", 2*time.Minute, "Per-request timeout, covers LLM generation")
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := commandLogging(cmd)
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openJournal(v)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()

	repo := st.EventRepo()
	svc, err := buildServices(ctx, v, repo)
	if err != nil {
		return err
	}
	srv := api.New(newSession(svc, repo),
		api.WithAllowedOrigins(v.GetStringSlice("cors-origins")...),
		api.WithRequestTimeout(v.GetDuration("request-timeout")),
	)

	httpSrv := &http.Server{
		Addr:              v.GetString("addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
