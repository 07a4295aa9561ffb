package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/filegate/filegate/internal/adapters/outbound/cache"
	"github.com/filegate/filegate/internal/adapters/outbound/config"
	"github.com/filegate/filegate/internal/adapters/outbound/csvreader"
	"github.com/filegate/filegate/internal/adapters/outbound/gitinfo"
	"github.com/filegate/filegate/internal/adapters/outbound/history"
	"github.com/filegate/filegate/internal/adapters/outbound/metrics"
	"github.com/filegate/filegate/internal/adapters/outbound/scanner"
	"github.com/filegate/filegate/internal/adapters/outbound/schemafile"
	"github.com/filegate/filegate/internal/application"
	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/logger"
)

// overrides are command-line flags that take precedence over the config file.
type overrides struct {
	workers     int
	noCache     bool
	noHistory   bool
	metricsFile string
}

func (o overrides) apply(cfg *domain.EngineConfig) {
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.noCache {
		cfg.Cache.Enabled = false
	}
	if o.noHistory {
		cfg.History.Enabled = false
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
	}
}

// services is the wired application for one command invocation.
type services struct {
	cfg      domain.EngineConfig
	log      *zap.SugaredLogger
	schemas  *application.SchemaService
	validate *application.ValidateService
}

// newServices loads the configuration named by --config, applies o and
// wires the outbound adapters into the application services.
func newServices(cmd *cobra.Command, o overrides) (*services, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	var loader domain.ConfigLoader = config.New()
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	o.apply(&cfg)
	if err := config.Check(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File, Out: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}

	var rec domain.MetricsRecorder
	if cfg.MetricsFile != "" {
		tf, err := metrics.NewTextfile(cfg.MetricsFile)
		if err != nil {
			return nil, err
		}
		rec = tf
	}

	schemas := application.NewSchemaService(schemafile.New(), cache.New(), nil, cfg.Cache.Enabled, log)
	svc := application.NewValidateService(cfg, schemas, csvreader.New(), scanner.New(), history.New(), gitinfo.New(), rec, log)
	return &services{cfg: cfg, log: log, schemas: schemas, validate: svc}, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
