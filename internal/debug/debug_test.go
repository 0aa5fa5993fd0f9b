package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetDebug tests enabling and disabling debug mode.
func TestSetDebug(t *testing.T) {
	defer SetDebug(false)

	SetDebug(true)
	assert.True(t, IsEnabled())

	SetDebug(false)
	assert.False(t, IsEnabled())
}

// TestDebugDisabledIsSilent ensures Debug is a no-op while disabled.
func TestDebugDisabledIsSilent(t *testing.T) {
	SetDebug(false)

	// Must not panic regardless of arguments.
	Debug("message %s %d", "arg", 42)
	DebugValue("key", map[string]string{"a": "b"})
	DebugJSON("data", []int{1, 2, 3})
}

// TestDebugEnabledEmits exercises every emit path against the live logger,
// not the Nop one.
func TestDebugEnabledEmits(t *testing.T) {
	defer SetDebug(false)

	SetDebug(true)
	SetNoColor(true)

	Debug("message %s %d", "arg", 42)
	Debugf("formatted %v", true)
	DebugValue("key", map[string]string{"a": "b"})
	DebugJSON("data", []int{1, 2, 3})
}

// TestNoColorToggle verifies color toggling does not disturb enablement.
func TestNoColorToggle(t *testing.T) {
	defer SetDebug(false)

	SetDebug(true)
	SetNoColor(true)
	assert.True(t, IsEnabled())

	SetNoColor(false)
	assert.True(t, IsEnabled())
}
