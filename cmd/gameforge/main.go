package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gameforge/internal/config"
	"gameforge/internal/llm"
	"gameforge/internal/pipeline"
	"gameforge/internal/server"
	"gameforge/internal/store"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gameforge",
	Short: "gameforge - AI game content generation service",
	Long: `gameforge turns free-text game concepts into structured game projects:
a design schema with an initial scene, iteratively appended scenes,
platform-specific source code, and AI-generated preview imagery.

Run without arguments to start the HTTP API server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gameforge.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Logging.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func buildClient(cfg *config.Config) (llm.Client, bool, error) {
	pc := &llm.ProviderConfig{
		Provider: llm.Provider(cfg.LLM.Provider),
		APIKey:   cfg.LLM.APIKey,
	}
	if pc.APIKey == "" {
		detected, err := llm.DetectProvider()
		if err != nil {
			// The service still serves catalogs and stored games
			// without a backend; generation calls will fail.
			logger.Warn("no generation backend configured", zap.Error(err))
			return llm.NewGeminiClient(""), false, nil
		}
		pc = detected
	}
	pc.BaseURL = cfg.LLM.BaseURL
	pc.Model = cfg.LLM.Model
	pc.ImageModel = cfg.LLM.ImageModel
	pc.Timeout = cfg.GetMultimodalTimeout()
	pc.Logger = logger

	client, err := llm.NewClient(*pc)
	if err != nil {
		return nil, false, err
	}
	return client, true, nil
}

func runServe(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err = buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.NewSQLiteStore(cfg.Database.Path, logger.Named("store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	client, configured, err := buildClient(cfg)
	if err != nil {
		return err
	}

	pipe := pipeline.New(pipeline.Config{
		Client:            client,
		Store:             st,
		Logger:            logger.Named("pipeline"),
		TextTimeout:       cfg.GetTextTimeout(),
		MultimodalTimeout: cfg.GetMultimodalTimeout(),
	})

	srv := server.New(server.Config{
		Generator:     pipe,
		Store:         st,
		Logger:        logger.Named("http"),
		LLMConfigured: configured,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", httpSrv.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
