package dsi

import (
	"fmt"

	"dsipanel/internal/log"
	"dsipanel/internal/panel"
)

var _ panel.Channel = (*Mock)(nil)

// Mock is a hardware-free command channel. It logs every operation and can
// be told to start failing after a number of writes, which makes it useful
// both for local development on machines without the panel attached and for
// exercising error paths.
type Mock struct {
	// FailAfter, when > 0, makes Write fail once that many writes have
	// succeeded.
	FailAfter int

	writes int
}

// NewMock returns a Mock that never fails.
func NewMock() *Mock {
	return &Mock{}
}

// Writes reports how many payloads have been accepted.
func (m *Mock) Writes() int { return m.writes }

func (m *Mock) Write(p []byte) error {
	if m.FailAfter > 0 && m.writes >= m.FailAfter {
		return fmt.Errorf("dsi(mock): injected failure after %d writes", m.FailAfter)
	}
	m.writes++
	log.Debug("mock write", "payload", fmt.Sprintf("% 02x", p))
	return nil
}

func (m *Mock) ExitSleepMode() error {
	log.Debug("mock exit sleep mode")
	return nil
}

func (m *Mock) EnterSleepMode() error {
	log.Debug("mock enter sleep mode")
	return nil
}

func (m *Mock) SetDisplayOn() error {
	log.Debug("mock set display on")
	return nil
}

func (m *Mock) SetDisplayOff() error {
	log.Debug("mock set display off")
	return nil
}

// Close matches the real connection's interface so run code can treat both
// uniformly.
func (m *Mock) Close() error { return nil }
