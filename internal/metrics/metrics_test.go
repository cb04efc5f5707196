package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsipanel/internal/dsi"
	"dsipanel/internal/panel"
)

func TestWrapChannelCountsWrites(t *testing.T) {
	before := testutil.ToFloat64(channelWrites)
	ch := WrapChannel(dsi.NewMock())

	require.NoError(t, ch.Write([]byte{0xFE, 0x05}))
	require.NoError(t, ch.Write([]byte{0x29, 0x00}))

	assert.Equal(t, before+2, testutil.ToFloat64(channelWrites))
}

func TestWrapChannelCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(channelWriteErrors)
	ch := WrapChannel(&failingChannel{})

	require.Error(t, ch.Write([]byte{0xFE, 0x05}))
	assert.Equal(t, before+1, testutil.ToFloat64(channelWriteErrors))
}

func TestWrapChannelForwardsLifecycleOps(t *testing.T) {
	ch := WrapChannel(dsi.NewMock())
	require.NoError(t, ch.ExitSleepMode())
	require.NoError(t, ch.SetDisplayOn())
	require.NoError(t, ch.SetDisplayOff())
	require.NoError(t, ch.EnterSleepMode())
}

func TestSetState(t *testing.T) {
	SetState(panel.StateEnabled)
	assert.Equal(t, float64(panel.StateEnabled), testutil.ToFloat64(panelState))
	SetState(panel.StateUninitialized)
	assert.Equal(t, float64(panel.StateUninitialized), testutil.ToFloat64(panelState))
}

type failingChannel struct{}

func (f *failingChannel) Write([]byte) error    { return errors.New("down") }
func (f *failingChannel) ExitSleepMode() error  { return errors.New("down") }
func (f *failingChannel) EnterSleepMode() error { return errors.New("down") }
func (f *failingChannel) SetDisplayOn() error   { return errors.New("down") }
func (f *failingChannel) SetDisplayOff() error  { return errors.New("down") }
