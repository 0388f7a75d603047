package scm

import "fmt"

// Verb is one of the fixed commands the resolver can drive over every path.
type Verb int

const (
	VerbUpdate Verb = iota
	VerbStatus
	VerbDiff
	VerbRevert
	VerbRunHooks
	VerbCleanup
	VerbRevInfo
)

var verbNames = [...]string{
	VerbUpdate:   "update",
	VerbStatus:   "status",
	VerbDiff:     "diff",
	VerbRevert:   "revert",
	VerbRunHooks: "runhooks",
	VerbCleanup:  "cleanup",
	VerbRevInfo:  "revinfo",
}

func (v Verb) String() string {
	if v < 0 || int(v) >= len(verbNames) {
		return fmt.Sprintf("Verb(%d)", int(v))
	}
	return verbNames[v]
}

// Verbs returns every supported verb in declaration order.
func Verbs() []Verb {
	out := make([]Verb, len(verbNames))
	for i := range verbNames {
		out[i] = Verb(i)
	}
	return out
}

// ParseVerb maps a command name to its Verb.
func ParseVerb(name string) (Verb, error) {
	for i, n := range verbNames {
		if n == name {
			return Verb(i), nil
		}
	}
	return 0, &UnsupportedCommandError{Command: name}
}

// Syncs reports whether the verb brings checkouts to their resolved state.
// Only syncing verbs create the entries record.
func (v Verb) Syncs() bool {
	switch v {
	case VerbUpdate, VerbRevert:
		return true
	}
	return false
}
