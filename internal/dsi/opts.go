package dsi

// Opts configures the hardware link. Pin numbers are BCM GPIO numbers as on
// the Raspberry Pi header.
type Opts struct {
	// Port is the SPI port name for periph.io ("" for the default,
	// typically /dev/spidev0.0).
	Port string
	// SpeedHz is the SPI clock. Zero selects a conservative 2MHz.
	SpeedHz int

	// DCPin drives the data/command line: low for the command byte, high
	// for parameters.
	DCPin int
	// ResetPin drives the panel's active-low reset line.
	ResetPin int
}

func (o *Opts) withDefaults() Opts {
	out := *o
	if out.SpeedHz <= 0 {
		out.SpeedHz = 2_000_000
	}
	return out
}
