// Package daemon ties a panel to its runtime concerns: serialized lifecycle
// access, scheduled blank/wake, and status reporting for the HTTP API.
// The panel contract requires the caller to serialize lifecycle operations;
// the daemon's mutex is that serialization point.
package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"dsipanel/internal/config"
	"dsipanel/internal/log"
	"dsipanel/internal/metrics"
	"dsipanel/internal/panel"
)

// Status is a point-in-time snapshot for the status API.
type Status struct {
	Variant string `json:"variant"`
	State   string `json:"state"`
	Mode    string `json:"mode"`
	Uptime  int64  `json:"uptime_s"`
}

// Daemon wraps one panel instance.
type Daemon struct {
	mu      sync.Mutex
	cfg     *config.Config
	panel   *panel.Panel
	cron    *cron.Cron
	started time.Time
}

// New builds a Daemon around p.
func New(cfg *config.Config, p *panel.Panel) *Daemon {
	return &Daemon{
		cfg:     cfg,
		panel:   p,
		started: time.Now(),
	}
}

// Up brings the panel to the enabled state: hardware init if needed, then
// the logical enable.
func (d *Daemon) Up(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.panel.Prepare(ctx); err != nil {
		return err
	}
	if err := d.panel.Enable(ctx); err != nil {
		return err
	}
	metrics.SetState(d.panel.State())
	log.Info("panel up", "variant", d.panel.Variant().Name, "state", d.panel.State())
	return nil
}

// Wake is Up under its scheduling name.
func (d *Daemon) Wake(ctx context.Context) error {
	return d.Up(ctx)
}

// Blank powers the panel down: logical disable, then display off and
// controller sleep. Teardown is best-effort, so Blank only fails if the
// disable itself does.
func (d *Daemon) Blank(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.panel.Disable(ctx); err != nil {
		return err
	}
	if err := d.panel.Unprepare(ctx); err != nil {
		return err
	}
	metrics.SetState(d.panel.State())
	log.Info("panel blanked", "variant", d.panel.Variant().Name)
	return nil
}

// Status reports the current snapshot.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	mode := d.panel.Modes()[0]
	return Status{
		Variant: d.panel.Variant().Name,
		State:   d.panel.State().String(),
		Mode:    mode.String(),
		Uptime:  int64(time.Since(d.started).Seconds()),
	}
}

// StartSchedules registers the configured blank/wake cron entries and starts
// the scheduler. It is a no-op when neither schedule is set.
func (d *Daemon) StartSchedules() error {
	blank, wake := d.cfg.BlankCron, d.cfg.WakeCron
	if blank == "" && wake == "" {
		return nil
	}

	c := cron.New()
	if blank != "" {
		if _, err := c.AddFunc(blank, func() {
			if err := d.Blank(context.Background()); err != nil {
				log.Error("scheduled blank failed", err)
			}
		}); err != nil {
			return fmt.Errorf("daemon: blank schedule %q: %w", blank, err)
		}
	}
	if wake != "" {
		if _, err := c.AddFunc(wake, func() {
			if err := d.Wake(context.Background()); err != nil {
				log.Error("scheduled wake failed", err)
			}
		}); err != nil {
			return fmt.Errorf("daemon: wake schedule %q: %w", wake, err)
		}
	}

	c.Start()
	d.cron = c
	log.Info("schedules started", "blank", blank, "wake", wake)
	return nil
}

// StopSchedules stops the cron scheduler, waiting for a running job.
func (d *Daemon) StopSchedules() {
	if d.cron == nil {
		return
	}
	<-d.cron.Stop().Done()
	d.cron = nil
}
