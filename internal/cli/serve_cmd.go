package cli

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ledes/internal/api"
	"ledes/internal/service/ai"
	"ledes/internal/service/assistant"
	"ledes/internal/service/snapshot"
	"ledes/internal/storage"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfgPath, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.address")
	return cmd
}

func runServe(ctx context.Context, cfgPath, addr string) error {
	e, err := loadEnv(cfgPath)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	db, err := e.openStore()
	if err != nil {
		return err
	}
	// Assigning a nil *Records to the interfaces would make them non-nil.
	var (
		records   api.RecordReader
		recordSrc snapshot.RecordStore
	)
	if db != nil {
		defer db.Close()
		r := storage.NewRecords(db)
		records, recordSrc = r, r
	}
	aggregator := snapshot.NewAggregator(recordSrc, e.logger)

	provider, provCfg := e.cfg.ActiveProvider()
	opts := assistant.Options{
		APIKey:    provCfg.APIKey,
		Source:    aggregator,
		MaxTokens: e.cfg.Assistant.MaxTokens,
		Logger:    e.logger,
	}
	if provCfg.APIKey != "" {
		cm, err := ai.NewChatModel(ctx, provider, provCfg, e.cfg.Assistant.MaxTokens)
		if err != nil {
			return fmt.Errorf("init chat model: %w", err)
		}
		opts.Model = cm
	} else {
		e.logger.Warn("model api key missing, chat requests will be rejected", zap.String("provider", provider))
	}
	controller := assistant.NewController(opts)

	gin.SetMode(e.cfg.Server.Mode)
	router := gin.New()
	api.NewHandler(controller, aggregator, records, e.logger).RegisterRoutes(router)

	if addr == "" {
		addr = e.cfg.Server.Address
	}
	e.logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("provider", provider),
		zap.Bool("store_configured", db != nil),
	)
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
