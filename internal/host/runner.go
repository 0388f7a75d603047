package host

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/gclient-go/gclient/internal/logging"
)

// Command describes one streamed subprocess invocation.
type Command struct {
	Args []string
	Dir  string

	// Pattern, when set, is matched against every output line and its first
	// group is collected into Result.Captured.
	Pattern *regexp.Regexp

	// FailStatus, when set, is reported as Result.Status instead of an
	// ExitError for a non-zero exit.
	FailStatus *int
}

// Result is the outcome of a streamed invocation.
type Result struct {
	Status   int
	Captured []string
}

// Runner executes subprocesses one at a time.
type Runner interface {
	// Capture runs args in dir and returns its standard output.
	Capture(ctx context.Context, args []string, dir string) ([]byte, error)

	// Stream runs cmd, echoing each output line to the operator while
	// collecting pattern matches on the same read loop.
	Stream(ctx context.Context, cmd Command) (*Result, error)
}

// ExitError reports a subprocess that could not be started or exited
// non-zero.
type ExitError struct {
	Args   []string
	Dir    string
	Status int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("'%s' in '%s' failed", strings.Join(e.Args, " "), e.Dir)
	if e.Status != 0 {
		msg += fmt.Sprintf(" with exit status %d", e.Status)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec and echoes streamed output to Out.
type ExecRunner struct {
	Out io.Writer
}

// NewExecRunner returns a runner echoing to out.
func NewExecRunner(out io.Writer) *ExecRunner {
	return &ExecRunner{Out: out}
}

func (r *ExecRunner) Capture(ctx context.Context, args []string, dir string) ([]byte, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	logging.LogCommand(logging.GetLogger("host"), args, dir)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, &ExitError{Args: args, Dir: dir, Status: exitStatus(err), Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return out, nil
}

func (r *ExecRunner) Stream(ctx context.Context, c Command) (*Result, error) {
	if len(c.Args) == 0 {
		return nil, errors.New("empty command")
	}
	logging.LogCommand(logging.GetLogger("host"), c.Args, c.Dir)
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "\n________ running '%s' in '%s'\n", strings.Join(c.Args, " "), c.Dir)

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ExitError{Args: c.Args, Dir: c.Dir, Err: err}
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return nil, &ExitError{Args: c.Args, Dir: c.Dir, Err: err}
	}

	res := &Result{}
	readErr := scanLines(stdout, func(line string) {
		fmt.Fprintln(out, line)
		if c.Pattern == nil {
			return
		}
		if m := c.Pattern.FindStringSubmatch(line); len(m) > 1 {
			res.Captured = append(res.Captured, m[1])
		}
	})

	if err := cmd.Wait(); err != nil {
		status := exitStatus(err)
		if c.FailStatus != nil && status != 0 {
			res.Status = *c.FailStatus
			return res, nil
		}
		return nil, &ExitError{Args: c.Args, Dir: c.Dir, Status: status, Err: err}
	}
	if readErr != nil {
		return nil, &ExitError{Args: c.Args, Dir: c.Dir, Err: readErr}
	}
	return res, nil
}

// scanLines calls fn for every line of r, without the line terminator.
func scanLines(r io.Reader, fn func(string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}
