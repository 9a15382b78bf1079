package ioports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFilePickerUnsetEnvVarReturnsEmptyWithoutError(t *testing.T) {
	p := EnvFilePicker{FileEnvVar: "LISTPICK_TEST_UNSET_FILE_PICKER"}
	got, err := p.PickFile()
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestEnvFilePickerRunsConfiguredCommand(t *testing.T) {
	t.Setenv("LISTPICK_TEST_FILE_PICKER", "printf '/tmp/chosen.txt\\n'")
	p := EnvFilePicker{FileEnvVar: "LISTPICK_TEST_FILE_PICKER"}

	got, err := p.PickFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/chosen.txt", got, "trailing newline from the picker command must be trimmed")
}

func TestEnvFilePickerDirUsesDirEnvVar(t *testing.T) {
	t.Setenv("LISTPICK_TEST_DIR_PICKER", "printf /tmp/somedir")
	p := EnvFilePicker{DirEnvVar: "LISTPICK_TEST_DIR_PICKER"}

	got, err := p.PickDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/somedir", got)
}

func TestEnvFilePickerCommandFailureIsAnError(t *testing.T) {
	t.Setenv("LISTPICK_TEST_FAIL_PICKER", "false")
	p := EnvFilePicker{FileEnvVar: "LISTPICK_TEST_FAIL_PICKER"}

	_, err := p.PickFile()
	assert.Error(t, err)
}

func TestTrimTrailingNewlineStripsCRAndLF(t *testing.T) {
	assert.Equal(t, "abc", trimTrailingNewline("abc\r\n"))
	assert.Equal(t, "abc", trimTrailingNewline("abc\n"))
	assert.Equal(t, "abc", trimTrailingNewline("abc"))
	assert.Equal(t, "", trimTrailingNewline("\n\n"))
}

func TestSystemSpawnRunsCommand(t *testing.T) {
	var s SpawnPort = SystemSpawn{}
	assert.NoError(t, s.Spawn("true"))
	assert.Error(t, s.Spawn("false"))
}
