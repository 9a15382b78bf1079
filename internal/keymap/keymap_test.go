package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAppliesRemapBeforeDisabled(t *testing.T) {
	k := New()
	k.Bind(OpRefresh, "r")
	k.Remap("ctrl+l", "r")
	// The raw key is disabled, but the remap runs first, so only the
	// remapped key "r" is checked against the disabled set.
	k.Disable("ctrl+l")
	assert.Equal(t, OpRefresh, k.Resolve("ctrl+l"))
}

func TestResolveDisabledKeyShortCircuits(t *testing.T) {
	k := New()
	k.Bind(OpExit, "q")
	k.Disable("q")
	assert.Equal(t, OpNone, k.Resolve("q"))

	k.Enable("q")
	assert.Equal(t, OpExit, k.Resolve("q"))
}

func TestResolveUnboundKeyIsNone(t *testing.T) {
	k := Default()
	assert.Equal(t, OpNone, k.Resolve("ctrl+z"))
}

func TestDefaultBindsCoreNavigation(t *testing.T) {
	k := Default()
	assert.Equal(t, OpCursorUp, k.Resolve("k"))
	assert.Equal(t, OpCursorDown, k.Resolve("j"))
	assert.Equal(t, OpHelp, k.Resolve("?"))
	assert.Equal(t, OpFullExit, k.Resolve("ctrl+c"))
}

func TestCloneIsIndependent(t *testing.T) {
	k := Default()
	c := k.Clone()
	c.Disable("j")
	assert.Equal(t, OpCursorDown, k.Resolve("j"), "disabling on the clone must not affect the original")
	assert.Equal(t, OpNone, c.Resolve("j"))
}

func TestModalStripsStructuralMutationOperations(t *testing.T) {
	base := Default()
	m := Modal(base, false)

	assert.Equal(t, OpCursorDown, m.Resolve("j"), "navigation survives into the modal keymap")
	assert.Equal(t, OpNone, m.Resolve("d"), "delete_row must not survive into a restricted modal keymap")
	assert.Equal(t, OpNone, m.Resolve(":"), "settings_prompt must not survive into a restricted modal keymap")
	assert.Equal(t, OpCancel, m.Resolve("esc"))
}

func TestModalCancelIsBackRemapsEscapeToExit(t *testing.T) {
	base := Default()
	m := Modal(base, true)
	assert.Equal(t, OpExit, m.Resolve("esc"))
}

func TestOperationStringRoundTripsKnownNames(t *testing.T) {
	assert.Equal(t, "cursor_up", OpCursorUp.String())
	assert.Equal(t, "none", OpNone.String())
}
