package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dsipanel/internal/config"
	"dsipanel/internal/daemon"
	"dsipanel/internal/dsi"
	appLog "dsipanel/internal/log"
	"dsipanel/internal/metrics"
	"dsipanel/internal/panel"
	"dsipanel/internal/web"
)

var (
	runMock bool
	runOnce bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Bring the panel up and serve the status API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

func init() {
	runCmd.Flags().BoolVar(&runMock, "mock", false, "Use the mock command channel instead of real hardware")
	runCmd.Flags().BoolVar(&runOnce, "once", false, "Bring the panel up, tear it down again, and exit")
	rootCmd.AddCommand(runCmd)
}

func runDaemon() error {
	conf, err := config.Load(configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", configPath)
		return err
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("effective config",
		"listen", conf.Listen,
		"variant", conf.Variant,
		"spi_port", conf.SPI.Port,
		"spi_speed_hz", conf.SPI.SpeedHz,
		"blank", conf.BlankCron,
		"wake", conf.WakeCron,
		"mock", runMock,
		"once", runOnce,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	var (
		ch     panel.Channel
		closer io.Closer
	)
	if runMock {
		m := dsi.NewMock()
		ch, closer = m, m
	} else {
		c, err := dsi.Open(ctx, dsi.Opts{
			Port:     conf.SPI.Port,
			SpeedHz:  conf.SPI.SpeedHz,
			DCPin:    conf.Pins.DC,
			ResetPin: conf.Pins.Reset,
		})
		if err != nil {
			appLog.Error("failed to open DSI link", err)
			return err
		}
		ch, closer = c, c
	}
	defer closer.Close()

	var opts []panel.Option
	if conf.Settle.ExitSleepMs > 0 || conf.Settle.DisplayOnMs > 0 {
		opts = append(opts, panel.WithSettle(
			time.Duration(conf.Settle.ExitSleepMs)*time.Millisecond,
			time.Duration(conf.Settle.DisplayOnMs)*time.Millisecond,
		))
	}
	p, err := panel.New(conf.Variant, metrics.WrapChannel(ch), opts...)
	if err != nil {
		appLog.Error("failed to build panel", err, "variant", conf.Variant)
		return err
	}

	d := daemon.New(conf, p)
	if err := d.Up(ctx); err != nil {
		appLog.Error("panel bring-up failed", err)
		return err
	}

	if runOnce {
		return d.Blank(context.Background())
	}

	if err := d.StartSchedules(); err != nil {
		appLog.Error("failed to start schedules", err)
		return err
	}
	defer d.StopSchedules()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- web.StartServer(ctx, conf, d)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			appLog.Error("HTTP server failed", err)
			return err
		}
	case <-ctx.Done():
		<-serveErr
	}

	// Best-effort teardown so the panel is left asleep.
	if err := d.Blank(context.Background()); err != nil {
		appLog.Warn("teardown failed", err)
	}
	appLog.Info("dsipanel exiting")
	return nil
}
