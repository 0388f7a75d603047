package config

import "fmt"

// ConfigError reports a malformed or unusable root configuration.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NotConfiguredError is returned when no root configuration was found.
type NotConfiguredError struct{}

func (NotConfiguredError) Error() string {
	return "client not configured; see 'gclient config'"
}
