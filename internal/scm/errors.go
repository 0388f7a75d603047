package scm

import (
	"fmt"
	"strings"
)

// UnsupportedCommandError is returned for a verb outside the fixed set.
type UnsupportedCommandError struct {
	Command string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("'%s' is an unsupported command", e.Command)
}

// UnsupportedArgumentError is returned when positional arguments are passed
// to a verb that does not forward them to the VCS tool.
type UnsupportedArgumentError struct {
	Args []string
}

func (e *UnsupportedArgumentError) Error() string {
	return "Unsupported argument(s): " + strings.Join(e.Args, ",")
}

// AdapterError reports a failed VCS subprocess or output that could not be
// decoded.
type AdapterError struct {
	Args []string
	Dir  string
	Err  error
}

func (e *AdapterError) Error() string {
	msg := "failed to run command: " + strings.Join(e.Args, " ")
	if e.Dir != "" {
		msg += " in " + e.Dir
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// CheckoutError reports a path the driver refuses to touch, such as an
// unversioned directory sitting where a checkout should be.
type CheckoutError struct {
	Path string
	Msg  string
	Err  error
}

func (e *CheckoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return e.Path + ": " + e.Msg
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}
