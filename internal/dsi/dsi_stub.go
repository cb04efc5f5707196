//go:build !linux

package dsi

import (
	"context"
	"fmt"
)

// Conn is only functional on Linux where spidev and the GPIO character
// device exist. This stub keeps the package buildable everywhere; use Mock
// on other platforms.
type Conn struct{}

func Open(_ context.Context, _ Opts) (*Conn, error) {
	return nil, fmt.Errorf("dsi: hardware channel is only available on linux")
}

func (c *Conn) Write(p []byte) error { return errUnsupported() }

func (c *Conn) ExitSleepMode() error { return errUnsupported() }

func (c *Conn) EnterSleepMode() error { return errUnsupported() }

func (c *Conn) SetDisplayOn() error { return errUnsupported() }

func (c *Conn) SetDisplayOff() error { return errUnsupported() }

func (c *Conn) Close() error { return nil }

func errUnsupported() error {
	return fmt.Errorf("dsi: not supported on this platform")
}
