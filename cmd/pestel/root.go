package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pestel/internal/config"
	"github.com/goliatone/go-pestel/internal/logging"
	"github.com/goliatone/go-pestel/pkg/client"
	"github.com/goliatone/go-pestel/pkg/form"
	"github.com/goliatone/go-pestel/pkg/model"
	"github.com/goliatone/go-pestel/pkg/schema"
)

// errReported marks failures already shown to the user; main only sets the
// exit code.
var errReported = errors.New("pestel: failure reported")

type app struct {
	configPath   string
	contractPath string
	envFile      string
	baseURL      string
	logLevel     string

	cfg      *config.Config
	logger   *logrus.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pestel",
		Short:         "Political (PESTEL) analysis client",
		Long:          "pestel collects business details, asks the analysis backend for a political\nsummary and renders it as headings and bullets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file with PESTEL_* overrides")
	flags.StringVar(&a.baseURL, "backend", "", "backend base URL (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	flags.StringVar(&a.contractPath, "contract", "", "OpenAPI contract describing the backend (default: built in)")

	root.AddCommand(
		newServeCmd(a),
		newAskCmd(a),
		newFormatCmd(a),
		newPingCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{
		Path:     a.configPath,
		EnvFiles: []string{a.envFile},
	})
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.Backend.BaseURL = a.baseURL
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.closeLog = cfg, logger, closeLog
	a.logger.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"backend": cfg.Backend.BaseURL,
	}).Debug("pestel: configured")
	return nil
}

func (a *app) client() (*client.Client, error) {
	opts := []client.Option{
		client.WithTimeout(a.cfg.Backend.Timeout()),
		client.WithUserAgent("go-pestel/" + version),
	}
	if a.cfg.Backend.LiteralPath {
		opts = append(opts, client.WithLiteralPath())
	}
	c, err := client.New(a.cfg.Backend.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("pestel: backend client: %w", err)
	}
	return c, nil
}

func (a *app) controller(options ...form.Option) (*form.Controller, error) {
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	return form.NewController(c, append([]form.Option{form.WithLogger(a.logger)}, options...)...), nil
}

// formModel builds the analysis form from --contract, or from the built-in
// contract when the flag is empty.
func (a *app) formModel(ctx context.Context) (model.FormModel, error) {
	var (
		contract *schema.Schema
		err      error
	)
	if a.contractPath != "" {
		contract, err = schema.LoadFile(ctx, a.contractPath)
	} else {
		contract, err = schema.Load(ctx)
	}
	if err != nil {
		return model.FormModel{}, err
	}
	return contract.FormModel(schema.OperationAnalyze)
}
