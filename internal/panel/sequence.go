package panel

import (
	"fmt"
	"time"

	"dsipanel/internal/log"
)

// Entry is one step of a panel command sequence: either a register write or
// a blocking wait. When Sleep is set, Val is a delay in milliseconds and Reg
// is reserved (zero).
type Entry struct {
	Reg   byte
	Val   byte
	Sleep bool
}

// Cmd builds a register-write entry.
func Cmd(reg, val byte) Entry {
	return Entry{Reg: reg, Val: val}
}

// Wait builds a sleep entry of ms milliseconds. Longer waits are expressed
// as consecutive sleep entries.
func Wait(ms byte) Entry {
	return Entry{Val: ms, Sleep: true}
}

// Sequence is an ordered list of command entries. Order is significant:
// later writes may depend on mode-register state set by earlier ones.
// Sequences are defined at build time per panel variant and never mutated.
type Sequence []Entry

// SequenceError reports a transmission failure within a sequence. Index is
// the position of the failing write among the sequence's write entries; sleep
// entries do not consume an index. Nothing after the failing write was
// transmitted.
type SequenceError struct {
	Index int
	Err   error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("panel: sequence failed at write %d: %v", e.Index, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// ExecuteSequence transmits seq over ch in order. Sleep entries block the
// calling goroutine for their duration; they are deliberate waits matching
// panel power-up timing and are not cancellable. The first write failure
// aborts the run with a *SequenceError; there is no retry and no rollback,
// a partially-initialized panel is left for the caller to handle.
func ExecuteSequence(ch Channel, seq Sequence) error {
	return runSequence(ch, seq, time.Sleep)
}

// runSequence is ExecuteSequence with an injectable sleep, used by Panel and
// by tests that must not wait in real time.
func runSequence(ch Channel, seq Sequence, sleep func(time.Duration)) error {
	writes := 0
	for _, e := range seq {
		if e.Sleep {
			log.Debug("sequence sleep", "ms", e.Val)
			sleep(time.Duration(e.Val) * time.Millisecond)
			continue
		}
		if err := ch.Write([]byte{e.Reg, e.Val}); err != nil {
			return &SequenceError{Index: writes, Err: err}
		}
		writes++
	}
	return nil
}
