// Package panel implements the bring-up sequencing and lifecycle state
// tracking for a MIPI-DSI display panel. The hardware transport is abstracted
// behind the Channel interface so the same sequencing logic drives a real
// SPI-bridged DSI link, a mock, or a test recorder.
package panel

// Channel is the command transport to the panel. Write sends a raw
// register/parameter payload; the four named operations correspond to the
// standard display command set and are implemented by the transport.
//
// Implementations are not expected to be safe for concurrent use. The caller
// must serialize lifecycle operations on a single panel.
type Channel interface {
	// Write transmits a raw command payload, typically a 2-byte
	// [register, value] pair.
	Write(p []byte) error

	ExitSleepMode() error
	EnterSleepMode() error
	SetDisplayOn() error
	SetDisplayOff() error
}
