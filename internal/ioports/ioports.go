// Package ioports wires the picker's external I/O ports: clipboard
// copy/paste, shelling out to an external command, and the optional
// external file-picker integration, per spec.md §6.6. These are kept as
// interfaces so internal/tui depends on behaviour, not a concrete
// clipboard/exec implementation, matching the "I/O ports" item of
// spec.md §9's shared-state re-architecture.
package ioports

import (
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
)

// ClipboardPort copies to and pastes from the system clipboard.
type ClipboardPort interface {
	Copy(text string) error
	Paste() (string, error)
}

// SystemClipboard implements ClipboardPort on
// github.com/atotto/clipboard, already an indirect dependency of the
// teacher's Bubble Tea stack (charmbracelet/x/clipboard's OSC52 path and
// atotto/clipboard both appear in its module graph); promoted here to a
// direct import since the picker calls it itself rather than only
// transitively through bubbletea.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

func (SystemClipboard) Paste() (string, error) {
	return clipboard.ReadAll()
}

// SpawnPort runs an external command (spec.md §6.6's shell-out port).
// The picker's terminal takeover is not suspended around it.
type SpawnPort interface {
	Spawn(name string, args ...string) error
}

// SystemSpawn implements SpawnPort on os/exec, attaching the child to the
// controlling terminal's stdio so interactive commands (an editor, a
// pager) work normally.
type SystemSpawn struct{}

func (SystemSpawn) Spawn(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// FilePickerPort resolves a file or directory path through an external
// chooser program, per spec.md §6.6.
type FilePickerPort interface {
	PickFile() (string, error)
	PickDir() (string, error)
}

// EnvFilePicker shells out to the command named by envVar (e.g.
// "VISIDATA_FILE_PICKER", "$EDITOR"-style) when set; PickFile/PickDir
// return "" with no error when envVar is unset, per spec.md §6.6's
// "interface-only" fallback.
type EnvFilePicker struct {
	FileEnvVar string
	DirEnvVar  string
}

func (p EnvFilePicker) PickFile() (string, error) {
	return runPicker(os.Getenv(p.FileEnvVar))
}

func (p EnvFilePicker) PickDir() (string, error) {
	return runPicker(os.Getenv(p.DirEnvVar))
}

func runPicker(command string) (string, error) {
	if command == "" {
		return "", nil
	}
	out, err := exec.Command("sh", "-c", command).Output()
	if err != nil {
		return "", err
	}
	return trimTrailingNewline(string(out)), nil
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
