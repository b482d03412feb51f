package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jqi/internal/config"
	"github.com/oakwood-commons/jqi/internal/editor"
	"github.com/oakwood-commons/jqi/pkg/settings"
)

const sampleJSON = `{"name":"jqi","items":[{"id":1,"tags":["a"]},{"id":2,"tags":["b"]}],"meta":{"version":"1.0"}}`

// runCLI executes a fresh root command with args and stdin, isolated from the user's config.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	origPiped, origTerm := stdinIsPiped, stdoutIsTerminal
	stdinIsPiped = func() bool { return stdin != "" }
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		stdinIsPiped, stdoutIsTerminal = origPiped, origTerm
	})

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPrintFromStdin(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default query is identity", args: []string{"-p", "--format", "json"}, want: "{\n  \"items\": ["},
		{name: "field", args: []string{"-p", "-q", ".name"}, want: "\"jqi\"\n"},
		{name: "iterate", args: []string{"-p", "-q", ".items[].id"}, want: "1\n2\n"},
		{name: "yaml output", args: []string{"-p", "-q", ".meta", "--format", "yaml"}, want: "version: \"1.0\"\n"},
		{name: "empty output", args: []string{"-p", "-q", "empty"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, sampleJSON, tt.args...)
			require.NoError(t, err)
			if strings.HasSuffix(tt.want, "\n") || tt.want == "" {
				assert.Equal(t, tt.want, out)
			} else {
				assert.True(t, strings.HasPrefix(out, tt.want), "got %q", out)
			}
		})
	}
}

func TestPrintFromFile(t *testing.T) {
	path := writeFile(t, "doc.yaml", "name: jqi\nitems:\n  - id: 1\n  - id: 2\n")
	out, err := runCLI(t, "", "-p", "-q", "[.items[].id] | add", path)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestPrintQueryError(t *testing.T) {
	_, err := runCLI(t, sampleJSON, "-p", "-q", ".name |")
	require.Error(t, err)
}

func TestInvalidFormatFlag(t *testing.T) {
	_, err := runCLI(t, sampleJSON, "-p", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestNoInput(t *testing.T) {
	_, err := runCLI(t, "", "-p")
	require.ErrorIs(t, err, errNoInput)
}

func TestEmptyStdin(t *testing.T) {
	_, err := runCLI(t, "   \n", "-p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")
}

func TestConfigFileDrivesInitialQueryAndFormat(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "results:\n  format: yaml\neditor:\n  initial_query: .meta\n")
	out, err := runCLI(t, sampleJSON, "-p", "--config-file", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "version: \"1.0\"\n", out)
}

func TestXDGConfigIsDiscovered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "jqi"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.RelativePath), []byte("editor:\n  initial_query: .name\n"), 0o600))

	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	assert.Equal(t, filepath.Join(dir, config.RelativePath), config.ResolvePath(""))
}

func TestFieldsCommand(t *testing.T) {
	out, err := runCLI(t, sampleJSON, "fields")
	require.NoError(t, err)
	assert.Equal(t, "id\nitems\nmeta\nname\ntags\nversion\n", out)
}

func TestFieldsCommandFromFile(t *testing.T) {
	path := writeFile(t, "doc.toml", "title = \"x\"\n\n[owner]\nname = \"y\"\n")
	out, err := runCLI(t, "", "fields", path)
	require.NoError(t, err)
	assert.Equal(t, "name\nowner\ntitle\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, settings.CliBinaryName+" "+settings.VersionInformation.BuildVersion))
}

func TestConfigCommand(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "autocomplete:\n  max_items: 4\n")
	out, err := runCLI(t, "", "config", "--config-file", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "max_items: 4")
	assert.Contains(t, out, "style: monokai")
}

func TestConfigCommandDefault(t *testing.T) {
	out, err := runCLI(t, "", "config", "--default")
	require.NoError(t, err)
	assert.Equal(t, string(config.DefaultConfigYAML()), out)
}

func TestLogFileReceivesEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "jqi.log")
	_, err := runCLI(t, sampleJSON, "-p", "--log-file", logPath)
	require.NoError(t, err)
	_, statErr := os.Stat(logPath)
	assert.NoError(t, statErr)
}

func TestNewSession(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Editor.MaxHistory = 3

	sess, err := newSession(context.Background(), "a: 1\nb: [1, 2]\n", cfg, "")
	require.NoError(t, err)
	assert.Equal(t, ".", sess.ctrl.Query())
	assert.Equal(t, []string{"a", "b"}, sess.index.AllFields())
	assert.Equal(t, editor.ModeInsert, sess.ctrl.Mode())
	assert.True(t, sess.ctrl.Result().OK())

	for i := 0; i < 5; i++ {
		sess.buf.InsertString("x")
	}
	n := 0
	for sess.buf.Undo() {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestNewSessionQueryOverride(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	sess, err := newSession(context.Background(), sampleJSON, cfg, ".name")
	require.NoError(t, err)
	assert.Equal(t, `"jqi"`, sess.ctrl.Result().Text)
}

func TestNewSessionBadInput(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	_, err = newSession(context.Background(), "{not json", cfg, "")
	require.Error(t, err)
}

// ========== terminal ==========

func TestTerminalDeviceNames(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in  string
		out string
	}{
		"windows": {in: "CONIN$", out: "CONOUT$"},
		"linux":   {in: "/dev/tty", out: "/dev/tty"},
		"darwin":  {in: "/dev/tty", out: "/dev/tty"},
	}
	for goos, expected := range tests {
		t.Run(goos, func(t *testing.T) {
			t.Parallel()
			in, out := terminalDeviceNames(goos)
			require.Equal(t, expected.in, in)
			require.Equal(t, expected.out, out)
		})
	}
}

func TestGetProgramOptionsPipedUsesTTYAndCleansUp(t *testing.T) {
	origIsPiped, origOpen := stdinIsPiped, openTerminalIOFn
	t.Cleanup(func() { stdinIsPiped, openTerminalIOFn = origIsPiped, origOpen })

	inFile, err := os.CreateTemp(t.TempDir(), "tty-in-*")
	require.NoError(t, err)
	outFile, err := os.CreateTemp(t.TempDir(), "tty-out-*")
	require.NoError(t, err)

	stdinIsPiped = func() bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) { return inFile, outFile, nil }

	opts, cleanup := getProgramOptions()
	require.NotNil(t, cleanup)
	require.GreaterOrEqual(t, len(opts), 2)

	cleanup()
	require.Error(t, inFile.Close(), "cleanup closes the input")
	require.Error(t, outFile.Close(), "cleanup closes the output")
}

func TestGetProgramOptionsNotPiped(t *testing.T) {
	origIsPiped, origOpen := stdinIsPiped, openTerminalIOFn
	t.Cleanup(func() { stdinIsPiped, openTerminalIOFn = origIsPiped, origOpen })

	stdinIsPiped = func() bool { return false }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("should not be called")
	}

	opts, cleanup := getProgramOptions()
	require.Nil(t, opts)
	require.NotPanics(t, cleanup)
}

func TestGetProgramOptionsNoTTY(t *testing.T) {
	origIsPiped, origOpen := stdinIsPiped, openTerminalIOFn
	t.Cleanup(func() { stdinIsPiped, openTerminalIOFn = origIsPiped, origOpen })

	stdinIsPiped = func() bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("no tty")
	}

	opts, cleanup := getProgramOptions()
	require.Nil(t, opts)
	require.NotPanics(t, cleanup)
}

type fakeResizeTicker struct {
	ch chan time.Time
}

func (f *fakeResizeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeResizeTicker) Stop()               {}

func TestResizeWatcherSendsOnlyChanges(t *testing.T) {
	origSize, origTicker, origSend := termGetSize, newResizeTicker, sendWindowSize
	t.Cleanup(func() { termGetSize, newResizeTicker, sendWindowSize = origSize, origTicker, origSend })

	calls := atomic.Int32{}
	termGetSize = func(int) (int, int, error) {
		switch calls.Add(1) {
		case 1, 2:
			return 80, 24, nil
		default:
			return 100, 30, nil
		}
	}
	ticks := make(chan time.Time, 3)
	newResizeTicker = func(time.Duration) resizeTicker { return &fakeResizeTicker{ch: ticks} }
	msgs := make(chan tea.WindowSizeMsg, 3)
	sendWindowSize = func(_ *tea.Program, msg tea.WindowSizeMsg) { msgs <- msg }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := os.CreateTemp(t.TempDir(), "tty-*")
	require.NoError(t, err)
	defer out.Close()

	var p tea.Program
	withTTYResizeWatcher(ctx, out)(&p)
	ticks <- time.Now()
	ticks <- time.Now()
	ticks <- time.Now()

	recv := func() tea.WindowSizeMsg {
		select {
		case m := <-msgs:
			return m
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for resize message")
			return tea.WindowSizeMsg{}
		}
	}
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, recv())
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 30}, recv())
	select {
	case m := <-msgs:
		t.Fatalf("unexpected extra message %+v", m)
	case <-time.After(50 * time.Millisecond):
	}
}
