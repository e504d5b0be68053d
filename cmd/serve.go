package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/api"
	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/config"
	"github.com/nileshk/solance/internal/db"
	"github.com/nileshk/solance/internal/grading"
	"github.com/nileshk/solance/internal/history"
	"github.com/nileshk/solance/internal/llm"
	"github.com/nileshk/solance/internal/questiongen"
	"github.com/nileshk/solance/internal/studio"
	"github.com/nileshk/solance/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.LLM.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	defer database.Close()

	provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return err
	}

	subjects := cartridge.NewStore(database)
	records := history.NewStore(database)
	writer := history.NewWriter(records, cfg.WriteBuffer, logger)
	defer writer.Close()

	server := api.NewServer(api.Options{
		APIKey:      cfg.APIKey,
		CORSOrigins: cfg.CORSOrigins,
		Questions:   questiongen.NewService(provider, subjects, records, cfg.HistoryWindow, logger),
		Tutor:       tutor.NewService(provider, logger),
		Grader:      grading.NewService(provider, logger),
		Studio:      studio.NewService(provider, logger),
		Subjects:    subjects,
		History:     writer,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("db_driver", cfg.DBDriver),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("model", provider.ModelID()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
