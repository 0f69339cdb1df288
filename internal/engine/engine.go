package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/anbanpillay/ASRI-PyROPS/internal/adapter"
)

// ProtocolVersion is the request format version sent to engine programs.
const ProtocolVersion = "1"

// Engine runs one flight simulation.
type Engine interface {
	Simulate(ctx context.Context, in *adapter.EngineInput) (*Output, error)
}

// Func adapts a function to the Engine interface.
type Func func(ctx context.Context, in *adapter.EngineInput) (*Output, error)

// Simulate calls f.
func (f Func) Simulate(ctx context.Context, in *adapter.EngineInput) (*Output, error) {
	return f(ctx, in)
}

// Request is the document written to an engine program's stdin.
type Request struct {
	ProtocolVersion string               `json:"protocol_version"`
	Input           *adapter.EngineInput `json:"input"`
}

// waitDelay bounds how long a killed engine's leftover children may hold
// its output pipes open.
const waitDelay = 2 * time.Second

// stderrTail bounds how much engine diagnostic output is kept in errors.
const stderrTail = 2048

// Command runs an external engine program once per Simulate call.
type Command struct {
	// Path is the program to run.
	Path string

	// Args are passed to the program after Path.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Timeout bounds the wall-clock time of one run. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
}

// Simulate writes the request to the program's stdin and decodes its stdout.
// The simulated-time horizon travels inside the input; Timeout is only the
// wall-clock guard around the process.
func (c *Command) Simulate(ctx context.Context, in *adapter.EngineInput) (*Output, error) {
	if c.Path == "" {
		return nil, &RunError{Code: ErrCodeFailed, Message: "no engine command configured"}
	}
	req, err := json.Marshal(Request{ProtocolVersion: ProtocolVersion, Input: in})
	if err != nil {
		return nil, fmt.Errorf("encode engine request: %w", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = bytes.NewReader(req)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	slog.Debug("engine starting", "path", c.Path, "args", c.Args, "request_bytes", len(req))
	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		tail := tailOf(stderr.String())
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Error("engine timed out", "path", c.Path, "elapsed", elapsed)
			return nil, &RunError{
				Code:    ErrCodeTimeout,
				Message: fmt.Sprintf("engine did not finish within %s", c.Timeout),
				Stderr:  tail,
				Err:     ctx.Err(),
			}
		}
		slog.Error("engine failed", "path", c.Path, "elapsed", elapsed, "error", err)
		return nil, &RunError{Code: ErrCodeFailed, Message: "engine run failed", Stderr: tail, Err: err}
	}

	out, err := ReadOutput(&stdout)
	if err != nil {
		var re *RunError
		if errors.As(err, &re) {
			re.Stderr = tailOf(stderr.String())
		}
		return nil, err
	}
	slog.Info("engine finished",
		"path", c.Path,
		"elapsed", elapsed,
		"engine_version", out.EngineVersion,
		"termination", out.Termination,
		"channels", len(out.Channels),
	)
	return out, nil
}

func tailOf(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = "..." + s[len(s)-stderrTail:]
	}
	return s
}

// Replay serves a captured engine output file instead of running an engine.
type Replay struct {
	Path string
}

// Simulate returns the captured output. The input is ignored.
func (r *Replay) Simulate(ctx context.Context, _ *adapter.EngineInput) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := ReadOutputFile(r.Path)
	if err != nil {
		return nil, err
	}
	slog.Info("engine output replayed", "path", r.Path, "engine_version", out.EngineVersion)
	return out, nil
}
