package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/flowboard/internal/ai"
	"github.com/existflow/flowboard/internal/config"
	"github.com/existflow/flowboard/internal/logger"
	"github.com/existflow/flowboard/internal/store"
	"github.com/existflow/flowboard/server"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr   string
	serveConfig string
	serveMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "path to config file")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "use the in-memory store instead of MongoDB")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
		Console:  cfg.LogConsole,
	}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Close()

	var st store.Store
	if serveMemory {
		logger.Warn("using in-memory store, data will not survive a restart")
		st = store.NewMemory()
	} else {
		m, err := store.NewMongo(cmd.Context(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("failed to connect to document store", logger.F("error", err))
			return err
		}
		defer m.Close(context.Background())
		st = m
	}

	completer := ai.NewClient(cfg.OpenAIKey, cfg.OpenAIBase)
	srv := server.New(cfg, st, completer)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Addr)
	}()

	logger.Info("flowboard server starting", logger.F("addr", cfg.Addr))

	select {
	case sig := <-stop:
		logger.Info("shutting down", logger.F("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
