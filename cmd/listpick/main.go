package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grimandgreedy/listpick/internal/engine"
	"github.com/grimandgreedy/listpick/internal/format"
	"github.com/grimandgreedy/listpick/internal/ingest"
	"github.com/grimandgreedy/listpick/internal/tui"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func main() {
	var (
		inputFile = flag.String("i", "", "file containing the table to load")
		stdinFlag = flag.Bool("stdin", false, "read the table from stdin")
		stdin2    = flag.Bool("stdin2", false, "read a leading line count N then N lines from stdin")
		delim     = flag.String("d", "\t", "delimiter for row fields (default: tab)")
		filetype  = flag.String("t", "", "filetype override: tsv|csv|json|xlsx|ods|pkl")
		generate  = flag.String("generate", "", "path to a file naming a shell command whose output refreshes the table")
		maxOutput = flag.String("generate-max-output", "64mb", "cap on a --generate command's captured stdout, e.g. 64mb, 512kb")
		loadPath  = flag.String("load", "", "load a previously saved snapshot instead of ingesting fresh data")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: listpick [FILE] [-i FILE] [--stdin | --stdin2] [-d DELIM] [-t TYPE] [--generate CONFIG] [--load SNAPSHOT]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	state, cfg, err := buildState(*inputFile, *stdinFlag, *stdin2, *delim, *filetype, *generate, *maxOutput, *loadPath)
	if err != nil {
		log.WithError(err).Error("failed to load table")
		os.Exit(1)
	}

	title := "listpick"
	if flag.NArg() > 0 {
		title = flag.Arg(0)
	}

	app := tui.NewApp(title, state, cfg)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.WithError(err).Error("listpick exited with an error")
		os.Exit(1)
	}
}

// buildState resolves the table source per the CLI surface (load snapshot,
// positional file, -i, --stdin/--stdin2, or --generate), per spec.md §6.1.
func buildState(inputFile string, stdinFlag, stdin2 bool, delim, filetypeFlag, generate, maxOutput, loadPath string) (*engine.State, engine.Config, error) {
	cfg := engine.Config{IDColumn: 0}

	if loadPath != "" {
		state, _, _, err := engine.LoadSnapshot(loadPath)
		if err != nil {
			return nil, cfg, fmt.Errorf("load snapshot %q: %w", loadPath, err)
		}
		log.WithField("path", loadPath).Info("loaded snapshot")
		return state, cfg, nil
	}

	ft := ingest.Filetype(filetypeFlag)
	delimRune := delimiterRune(delim)

	if generate != "" {
		maxBytes := format.ParseHumanBytes(maxOutput)
		if maxBytes <= 0 {
			maxBytes = format.ParseHumanBytes("64mb")
		}
		refresh, firstRows, firstHeader, err := newGenerateRefresh(generate, delimRune, ft, maxBytes)
		if err != nil {
			return nil, cfg, fmt.Errorf("generate %q: %w", generate, err)
		}
		cfg.RefreshFunc = refresh
		cfg.AutoRefresh = true
		state := engine.NewState(firstRows, firstHeader)
		return state, cfg, nil
	}

	var (
		rows   [][]string
		header []string
		err    error
	)
	switch {
	case stdin2:
		rows, header, err = loadStdin2(delimRune, ft)
	case stdinFlag:
		rows, header, err = ingest.LoadReader(os.Stdin, delimRune, ft)
	case inputFile != "":
		rows, header, err = ingest.Load(inputFile, delimRune, ft)
	case flag.NArg() > 0:
		rows, header, err = ingest.Load(flag.Arg(0), delimRune, ft)
	default:
		return nil, cfg, fmt.Errorf("no data source given: pass FILE, -i FILE, --stdin, --stdin2, or --generate")
	}
	if err != nil {
		return nil, cfg, err
	}
	return engine.NewState(rows, header), cfg, nil
}

func delimiterRune(d string) rune {
	if d == "" {
		return '\t'
	}
	r := []rune(d)
	return r[0]
}

// loadStdin2 reads a leading decimal line count N, then parses the
// following N lines as the table body, per spec.md §6.1's --stdin2.
func loadStdin2(delim rune, ft ingest.Filetype) ([][]string, []string, error) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("stdin2: missing leading line count")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, nil, fmt.Errorf("stdin2: invalid line count: %w", err)
	}
	var buf bytes.Buffer
	for i := 0; i < n && scanner.Scan(); i++ {
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')
	}
	return ingest.LoadReader(&buf, delim, ft)
}

// newGenerateRefresh reads config (a file naming a command, one line,
// e.g. "/usr/local/bin/gen-table --format csv", split on whitespace with
// no shell quoting) and returns a
// RefreshFunc that re-runs it on every auto-refresh tick, parsing its
// stdout the same way Load parses a file. Grounded on the original
// Python implementation's `--generate` flag, which installs a callable
// as the picker's refresh_function; here the callable is "run this
// command and parse its output" rather than an arbitrary Python import.
// Captured stdout is capped at maxBytes (parsed from --generate-max-output
// via format.ParseHumanBytes) so a runaway or misbehaving command can't
// grow the table unboundedly between refreshes.
func newGenerateRefresh(config string, delim rune, ft ingest.Filetype, maxBytes int64) (engine.RefreshFunc, [][]string, []string, error) {
	raw, err := os.ReadFile(config)
	if err != nil {
		return nil, nil, nil, err
	}
	line := strings.TrimSpace(string(raw))
	if line == "" {
		return nil, nil, nil, fmt.Errorf("generate config %q is empty", config)
	}
	argv := strings.Fields(line)

	run := func() ([][]string, []string, error) {
		cmd := exec.Command(argv[0], argv[1:]...)
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return nil, nil, fmt.Errorf("generate command failed: %w", err)
		}
		return ingest.LoadReader(io.LimitReader(&out, maxBytes), delim, ft)
	}

	rows, header, err := run()
	if err != nil {
		return nil, nil, nil, err
	}
	refresh := func() ([][]string, []string, error) {
		return run()
	}
	return refresh, rows, header, nil
}
