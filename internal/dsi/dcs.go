// Package dsi provides the command channel to an SPI-bridged MIPI-DSI panel
// using periph.io. The real driver only builds on Linux; other platforms get
// a stub so the rest of the application always compiles, and Mock provides a
// hardware-free channel for development and the --mock run mode.
package dsi

// Display command set opcodes used by the lifecycle operations.
const (
	dcsEnterSleepMode = 0x10
	dcsExitSleepMode  = 0x11
	dcsSetDisplayOff  = 0x28
	dcsSetDisplayOn   = 0x29
)
