package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Agrid-Dev/solarthermal/cmd/app"
	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	httpctrl "github.com/Agrid-Dev/solarthermal/internal/controllers/http"
	modbusctrl "github.com/Agrid-Dev/solarthermal/internal/controllers/modbus"
	mqttctrl "github.com/Agrid-Dev/solarthermal/internal/controllers/mqtt"
	"github.com/Agrid-Dev/solarthermal/internal/report"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calculator behind the configured HTTP/MQTT/Modbus controllers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file (.yaml/.yml/.json)")
	return cmd
}

func runServe(parent context.Context, configPath string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	calc, err := newCalculator(cfg, log)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runners, err := buildControllers(cfg, calc, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error { return r.Run(ctx) })
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Errorw("controller exited", "error", err)
		return err
	}
	log.Info("shut down")
	return nil
}

type runner interface {
	Run(ctx context.Context) error
}

// buildControllers constructs every enabled controller before any of them
// starts, so a bad config never leaves a server running.
func buildControllers(cfg app.Config, calc *calculator.Calculator, log *zap.SugaredLogger) ([]runner, error) {
	var runners []runner

	if c := cfg.Controllers.HTTP; c.Enabled {
		srv := httpctrl.New(calc, c.Addr, cfg.DeviceID, report.ParseLocale(cfg.Display.Locale), log.With("controller", "http"))
		log.Infow("http listening", "addr", c.Addr)
		runners = append(runners, srv)
	}

	if c := cfg.Controllers.MQTT; c.Enabled {
		ctrl, err := mqttctrl.New(calc, mqttctrl.Config{
			DeviceID:        cfg.DeviceID,
			BrokerURL:       c.BrokerURL,
			ClientID:        c.ClientID,
			BaseTopic:       c.BaseTopic,
			QoS:             c.QoS,
			RetainSnapshot:  c.RetainSnapshot,
			PublishInterval: c.PublishInterval,
			Username:        c.Username,
			Password:        c.Password,
		}, log)
		if err != nil {
			return nil, err
		}
		runners = append(runners, ctrl)
	}

	if c := cfg.Controllers.MODBUS; c.Enabled {
		ctrl, err := modbusctrl.New(calc, modbusctrl.Config{
			DeviceID: cfg.DeviceID,
			Addr:     c.Addr,
			UnitID:   c.UnitID,
		}, log)
		if err != nil {
			return nil, err
		}
		runners = append(runners, ctrl)
	}

	return runners, nil
}

// newCalculator seeds the draft from config and sizes it when complete.
func newCalculator(cfg app.Config, log *zap.SugaredLogger) (*calculator.Calculator, error) {
	draft, complete := cfg.Draft()
	calc, err := calculator.New(draft, sizing.DefaultBounds())
	if err != nil {
		return nil, err
	}
	if complete {
		if err := calc.Calculate(); err != nil {
			log.Warnw("configured building rejected; starting in entry mode", "error", err)
		}
	}
	return calc, nil
}
