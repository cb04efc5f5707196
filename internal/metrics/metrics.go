// Package metrics exposes Prometheus instrumentation for the panel daemon:
// command-channel traffic counters and the current lifecycle state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dsipanel/internal/panel"
)

var (
	channelWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dsipanel_channel_writes_total",
		Help: "Raw command payloads sent to the panel",
	})
	channelWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dsipanel_channel_write_errors_total",
		Help: "Raw command payloads that failed to transmit",
	})
	lifecycleCommands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dsipanel_lifecycle_commands_total",
		Help: "Display-command-set lifecycle operations by name and outcome",
	}, []string{"command", "outcome"})
	panelState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dsipanel_state",
		Help: "Current panel lifecycle state (0=uninitialized, 1=prepared, 2=enabled)",
	})
)

func init() {
	prometheus.MustRegister(channelWrites, channelWriteErrors, lifecycleCommands, panelState)
}

// SetState records the panel's lifecycle state.
func SetState(s panel.State) {
	panelState.Set(float64(s))
}

// Channel wraps a panel command channel and counts its traffic.
type Channel struct {
	next panel.Channel
}

var _ panel.Channel = (*Channel)(nil)

// WrapChannel instruments next. All calls are forwarded unchanged.
func WrapChannel(next panel.Channel) *Channel {
	return &Channel{next: next}
}

func (c *Channel) Write(p []byte) error {
	channelWrites.Inc()
	err := c.next.Write(p)
	if err != nil {
		channelWriteErrors.Inc()
	}
	return err
}

func (c *Channel) lifecycle(name string, fn func() error) error {
	err := fn()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	lifecycleCommands.WithLabelValues(name, outcome).Inc()
	return err
}

func (c *Channel) ExitSleepMode() error {
	return c.lifecycle("exit_sleep_mode", c.next.ExitSleepMode)
}

func (c *Channel) EnterSleepMode() error {
	return c.lifecycle("enter_sleep_mode", c.next.EnterSleepMode)
}

func (c *Channel) SetDisplayOn() error {
	return c.lifecycle("set_display_on", c.next.SetDisplayOn)
}

func (c *Channel) SetDisplayOff() error {
	return c.lifecycle("set_display_off", c.next.SetDisplayOff)
}
