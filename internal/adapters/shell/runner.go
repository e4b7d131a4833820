// Package shell provides the command runner adapter used to drive
// version control tools.
package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTail is the number of trailing stderr lines attached to a failure.
const stderrTail = 10

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
	env    map[string]string
}

var _ ports.CommandRunner = (*Runner)(nil)

// NewRunner creates a new Runner. Commands never prompt for credentials.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
		env: map[string]string{
			"GIT_TERMINAL_PROMPT": "0",
			"HGPLAIN":             "1",
		},
	}
}

// Run executes name with args in dir.
// Stdout lines are logged as info, stderr lines as warnings. A failing
// command returns its exit code and the tail of its stderr as metadata.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmdEnv := resolveEnvironment(os.Environ(), r.env)

	executable := name
	if !filepath.IsAbs(name) {
		lp, err := lookPath(name, cmdEnv)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "command not found"), "command", name)
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // Commands are fixed VCS invocations
	// exec.CommandContext sets Args[0] to the resolved path; keep the name as invoked.
	cmd.Args[0] = name
	cmd.Dir = dir
	cmd.Env = cmdEnv

	stdout := &logWriter{emit: r.logger.Info}
	stderr := &logWriter{emit: r.logger.Warn, keep: stderrTail}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "command failed"), "command", name+" "+strings.Join(args, " "))
		err = zerr.With(err, "exit_code", exitCode)
		if tail := stderr.Tail(); tail != "" {
			err = zerr.With(err, "stderr", tail)
		}
		return err
	}

	return nil
}

// logWriter forwards complete lines to emit, buffering partial writes.
type logWriter struct {
	mu   sync.Mutex
	emit func(string)
	buf  bytes.Buffer
	keep int
	tail []string
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line: put it back until the rest arrives.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.line(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.line(w.buf.String())
		w.buf.Reset()
	}
}

// Tail returns the last lines written, joined by newlines.
func (w *logWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "\n")
}

func (w *logWriter) line(s string) {
	s = strings.TrimSuffix(s, "\r")
	if s == "" {
		return
	}
	w.emit(s)
	if w.keep > 0 {
		w.tail = append(w.tail, s)
		if len(w.tail) > w.keep {
			w.tail = w.tail[len(w.tail)-w.keep:]
		}
	}
}

// resolveEnvironment applies overrides on top of the system environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
