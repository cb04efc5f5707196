package panel

import (
	"fmt"
	"sort"
	"time"
)

// Variant bundles everything that distinguishes one supported panel module:
// its bring-up command sequence, display timing, and the settle delays
// enforced after the exit-sleep and display-on steps of Prepare.
type Variant struct {
	Name string

	Init Sequence
	Mode Mode

	// ExitSleepSettle and DisplayOnSettle are the waits after the
	// exit-sleep and display-on commands during Prepare.
	ExitSleepSettle time.Duration
	DisplayOnSettle time.Duration

	// LowPower, when non-nil, is an alternate sequence switching the panel
	// into its reduced-refresh idle mode. No registered variant defines one
	// yet; the field exists so a variant can add it without an API change.
	LowPower Sequence
}

// Register-level commands used in the rm69080 init table. The 0xFE writes
// select the manufacturer command page that the following write lands on.
const (
	cmdTearingEffectOn = 0x35
	cmdBrightness      = 0x51
	cmdIdleModeOff     = 0x38
	cmdExitSleep       = 0x11
	cmdDisplayOn       = 0x29
)

// rm69080Init brings the RM69080 controller from reset to displaying.
// The trailing sleep-out plus 300ms wait is required by the controller
// before display-on sticks.
var rm69080Init = Sequence{
	Cmd(0xFE, 0x05),
	Cmd(0x05, 0x00),
	Cmd(0xFE, 0x07),
	Cmd(0x07, 0x4F),
	Cmd(0xFE, 0x0A),
	Cmd(0x1C, 0x1B),
	Cmd(0xFE, 0x00),
	Cmd(cmdTearingEffectOn, 0x00),

	Cmd(cmdBrightness, 0xF0),  // brightness 0~255
	Cmd(cmdIdleModeOff, 0x00), // 60Hz

	Cmd(cmdExitSleep, 0x00),
	Wait(150),
	Wait(150),
	Cmd(cmdDisplayOn, 0x00),
}

// rm69080Mode is the single timing the 400x400 AMOLED module supports on a
// 1-lane DSI link.
var rm69080Mode = Mode{
	Clock:      11094,
	HActive:    400,
	HSyncStart: 400 + 10,
	HSyncEnd:   400 + 10 + 10,
	HTotal:     10 + 400 + 10 + 10,
	VActive:    400,
	VSyncStart: 400 + 10,
	VSyncEnd:   400 + 10 + 10,
	VTotal:     10 + 400 + 10 + 10,
}

var variants = map[string]*Variant{}

// register adds a variant under its name plus any aliases.
func register(v *Variant, aliases ...string) {
	variants[v.Name] = v
	for _, a := range aliases {
		variants[a] = v
	}
}

func init() {
	register(&Variant{
		Name:            "pv13900als20c",
		Init:            rm69080Init,
		Mode:            rm69080Mode,
		ExitSleepSettle: 40 * time.Millisecond,
		DisplayOnSettle: 20 * time.Millisecond,
	}, "rm69080")
}

// Lookup returns the variant registered under name.
func Lookup(name string) (*Variant, error) {
	v, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("panel: unknown variant %q", name)
	}
	return v, nil
}

// Names returns all registered variant names, aliases included, sorted.
func Names() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
