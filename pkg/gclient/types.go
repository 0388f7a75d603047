package gclient

import (
	"github.com/gclient-go/gclient/internal/config"
	"github.com/gclient-go/gclient/internal/engine"
)

// Type aliases re-export the internal types that make up the public API.

type Settings = config.Options
type Entry = engine.Entry
type RevInfo = engine.RevInfo

type NotConfiguredError = config.NotConfiguredError
type ConfigError = config.ConfigError
type ValidationError = config.ValidationError
type NoSolutionsError = engine.NoSolutionsError
type ConflictingRevisionError = engine.ConflictingRevisionError
type HookError = engine.HookError
