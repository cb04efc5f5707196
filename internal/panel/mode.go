package panel

import "fmt"

// Mode is a fixed display timing descriptor for one panel variant. All
// horizontal values are in pixels, vertical values in lines, Clock in kHz.
// It is a plain comparable value; the host graphics stack copies it into its
// own mode list.
type Mode struct {
	Clock int // pixel clock, kHz

	HActive    int
	HSyncStart int
	HSyncEnd   int
	HTotal     int

	VActive    int
	VSyncStart int
	VSyncEnd   int
	VTotal     int
}

// Refresh returns the vertical refresh rate in Hz derived from the timing,
// rounded to the nearest integer. Zero totals yield 0.
func (m Mode) Refresh() int {
	if m.HTotal == 0 || m.VTotal == 0 {
		return 0
	}
	return (m.Clock*1000 + m.HTotal*m.VTotal/2) / (m.HTotal * m.VTotal)
}

// String renders the mode as "400x400@60".
func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%d", m.HActive, m.VActive, m.Refresh())
}
