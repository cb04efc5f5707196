//go:build linux

package dsi

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"dsipanel/internal/log"
	"dsipanel/internal/panel"
)

var _ panel.Channel = (*Conn)(nil)

// Conn talks to the panel controller through an SPI port plus the
// data/command and reset GPIO lines. It implements the panel command
// channel: raw register writes and the four display-command-set lifecycle
// operations.
type Conn struct {
	port spi.PortCloser
	conn spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
}

// Open initializes periph.io, claims the SPI port and GPIO lines, and pulses
// the panel's reset line so the controller is ready for its init sequence.
func Open(ctx context.Context, opts Opts) (*Conn, error) {
	o := opts.withDefaults()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("dsi: periph host init failed: %w", err)
	}

	port, err := spireg.Open(o.Port)
	if err != nil {
		return nil, fmt.Errorf("dsi: failed to open SPI port %q: %w", o.Port, err)
	}

	conn, err := port.Connect(physic.Frequency(o.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("dsi: failed to connect SPI: %w", err)
	}

	dc, err := gpioOut(o.DCPin, gpio.Low)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	rst, err := gpioOut(o.ResetPin, gpio.High)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	c := &Conn{port: port, conn: conn, dc: dc, rst: rst}
	c.reset()

	log.Info("DSI link ready",
		"spi_port", o.Port,
		"speed_hz", o.SpeedHz,
		"dc_pin", o.DCPin, "reset_pin", o.ResetPin)
	return c, nil
}

// gpioOut resolves a BCM pin number and configures it as an output at the
// given initial level.
func gpioOut(num int, initial gpio.Level) (gpio.PinOut, error) {
	name := fmt.Sprintf("GPIO%d", num)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("dsi: gpio %s not found", name)
	}
	if err := p.Out(initial); err != nil {
		return nil, fmt.Errorf("dsi: gpio %s: %w", name, err)
	}
	return p, nil
}

// reset pulses the active-low reset line. The 120ms tail is the minimum the
// controller needs before it will accept a sleep-out.
func (c *Conn) reset() {
	_ = c.rst.Out(gpio.High)
	time.Sleep(10 * time.Millisecond)
	_ = c.rst.Out(gpio.Low)
	time.Sleep(10 * time.Millisecond)
	_ = c.rst.Out(gpio.High)
	time.Sleep(120 * time.Millisecond)
}

// Write sends a raw command payload. The first byte is clocked out with DC
// low (command), any remaining bytes with DC high (parameters).
func (c *Conn) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := c.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("dsi: dc low: %w", err)
	}
	if err := c.conn.Tx(p[:1], nil); err != nil {
		return fmt.Errorf("dsi: command 0x%02X: %w", p[0], err)
	}
	if len(p) == 1 {
		return nil
	}
	if err := c.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("dsi: dc high: %w", err)
	}
	if err := c.conn.Tx(p[1:], nil); err != nil {
		return fmt.Errorf("dsi: parameters for 0x%02X: %w", p[0], err)
	}
	return nil
}

// command sends a parameterless DCS opcode.
func (c *Conn) command(op byte) error {
	return c.Write([]byte{op})
}

func (c *Conn) ExitSleepMode() error { return c.command(dcsExitSleepMode) }

func (c *Conn) EnterSleepMode() error { return c.command(dcsEnterSleepMode) }

func (c *Conn) SetDisplayOn() error { return c.command(dcsSetDisplayOn) }

func (c *Conn) SetDisplayOff() error { return c.command(dcsSetDisplayOff) }

// Close releases the SPI port. GPIO pins need no explicit release.
func (c *Conn) Close() error {
	return c.port.Close()
}
