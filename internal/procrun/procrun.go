// Package procrun starts fixture binaries and reports how they exited.
package procrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
)

// Result describes a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner describes a process to start.
type Runner struct {
	BinaryPath string
	Arguments  []string
	EnvVars    map[string]string
	WorkDir    string
}

// Process is a started fixture.
type Process struct {
	cmd    *exec.Cmd
	stdout *lockedBuffer
	stderr *lockedBuffer
	done   chan struct{}
	result *Result
}

// Start launches the binary. The environment is replaced completely by
// EnvVars so a fixture never sees variables it was not given.
func (r *Runner) Start(ctx context.Context) (*Process, error) {
	cmd := exec.CommandContext(ctx, r.BinaryPath, r.Arguments...)
	cmd.Dir = r.WorkDir

	env := make([]string, 0, len(r.EnvVars))
	for key, value := range r.EnvVars {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = env

	p := &Process{
		cmd:    cmd,
		stdout: &lockedBuffer{},
		stderr: &lockedBuffer{},
		done:   make(chan struct{}),
	}
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", r.BinaryPath, err)
	}
	slog.Debug("Started fixture", "binary", r.BinaryPath, "pid", cmd.Process.Pid, "args", r.Arguments)

	go p.wait()
	return p, nil
}

func (p *Process) wait() {
	err := p.cmd.Wait()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
			p.stderr.WriteString(fmt.Sprintf("\nExecution error: %v", err))
		}
	}

	p.result = &Result{
		Stdout:   p.stdout.String(),
		Stderr:   p.stderr.String(),
		ExitCode: exitCode,
	}
	slog.Debug("Fixture exited", "binary", p.cmd.Path, "exit_code", exitCode)
	close(p.done)
}

// Signal delivers sig to the running process.
func (p *Process) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

// Stdout returns what the process has written to stdout so far.
func (p *Process) Stdout() string {
	return p.stdout.String()
}

// Stderr returns what the process has written to stderr so far.
func (p *Process) Stderr() string {
	return p.stderr.String()
}

// Exited reports whether the process has finished.
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the process exits or ctx is done.
func (p *Process) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run starts the binary and waits for it to exit.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	p, err := r.Start(ctx)
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) WriteString(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.WriteString(s)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
