package manifest

import "fmt"

// ManifestError reports a grammar violation or a value of the wrong shape.
type ManifestError struct {
	Line int // 1-based; 0 when the error is not tied to a position
	Col  int
	Msg  string
}

func (e *ManifestError) Error() string {
	if e.Line == 0 {
		return "manifest: " + e.Msg
	}
	return fmt.Sprintf("manifest:%d:%d: %s", e.Line, e.Col, e.Msg)
}

// VarUndefinedError is returned when Var(name) has no binding in either the
// caller's overrides or the document's own vars.
type VarUndefinedError struct {
	Name string
}

func (e *VarUndefinedError) Error() string {
	return "Var is not defined: " + e.Name
}

func shapeError(format string, args ...any) error {
	return &ManifestError{Msg: fmt.Sprintf(format, args...)}
}
