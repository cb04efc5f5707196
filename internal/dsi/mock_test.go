package dsi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCountsWrites(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Write([]byte{0xFE, 0x05}))
	require.NoError(t, m.Write([]byte{0x29, 0x00}))
	assert.Equal(t, 2, m.Writes())
}

func TestMockFailAfter(t *testing.T) {
	m := &Mock{FailAfter: 1}
	require.NoError(t, m.Write([]byte{0xFE, 0x05}))
	require.Error(t, m.Write([]byte{0x29, 0x00}))
	assert.Equal(t, 1, m.Writes())
}

func TestMockLifecycleOpsSucceed(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.ExitSleepMode())
	require.NoError(t, m.SetDisplayOn())
	require.NoError(t, m.SetDisplayOff())
	require.NoError(t, m.EnterSleepMode())
	require.NoError(t, m.Close())
}
