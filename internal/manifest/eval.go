// Package manifest evaluates gclient configuration, DEPS and entries files.
//
// The accepted language is a deliberately small subset of Python literal
// syntax: top-level NAME = expr bindings whose expressions are string, int,
// bool and None literals, list and dict literals, the + operator and a single
// call form, Var("name"). Nothing in a manifest is ever executed.
package manifest

import (
	"fmt"
	"strconv"
)

// Document is the ordered environment produced by evaluating a manifest.
type Document struct {
	names []string
	env   map[string]Value
}

// Get returns the value bound to a top-level name.
func (d *Document) Get(name string) (Value, bool) {
	v, ok := d.env[name]
	return v, ok
}

func (d *Document) bind(name string, v Value) {
	if _, ok := d.env[name]; !ok {
		d.names = append(d.names, name)
	}
	d.env[name] = v
}

// Evaluate parses text and evaluates its bindings in order. Var(name) looks
// name up in customVars first and then in the document's own "vars" binding
// as assigned so far.
func Evaluate(text string, customVars map[string]string) (*Document, error) {
	toks, err := newLexer(text).tokens()
	if err != nil {
		return nil, err
	}
	ev := &evaluator{
		toks:       toks,
		customVars: customVars,
		doc:        &Document{env: make(map[string]Value)},
	}
	if err := ev.run(); err != nil {
		return nil, err
	}
	return ev.doc, nil
}

type evaluator struct {
	toks       []token
	pos        int
	customVars map[string]string
	doc        *Document
}

func (e *evaluator) peek() token { return e.toks[e.pos] }

func (e *evaluator) next() token {
	t := e.toks[e.pos]
	if t.kind != tokEOF {
		e.pos++
	}
	return t
}

func (e *evaluator) errorf(t token, format string, args ...any) error {
	return &ManifestError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

func (e *evaluator) isPunct(text string) bool {
	t := e.peek()
	return t.kind == tokPunct && t.text == text
}

func (e *evaluator) expectPunct(text string) error {
	t := e.next()
	if t.kind != tokPunct || t.text != text {
		return e.errorf(t, "expected %q, found %s", text, t)
	}
	return nil
}

func (e *evaluator) run() error {
	for {
		t := e.peek()
		switch t.kind {
		case tokEOF:
			return nil
		case tokNewline:
			e.next()
			continue
		case tokName:
		default:
			return e.errorf(t, "expected a name binding, found %s", t)
		}

		name := e.next()
		if isKeyword(name.text) {
			return e.errorf(name, "cannot assign to %s", name.text)
		}
		if err := e.expectPunct("="); err != nil {
			return err
		}
		v, err := e.expr()
		if err != nil {
			return err
		}
		if end := e.peek(); end.kind != tokNewline && end.kind != tokEOF {
			return e.errorf(end, "unexpected %s after expression", end)
		}
		e.doc.bind(name.text, v)
	}
}

// expr := term ('+' term)*
func (e *evaluator) expr() (Value, error) {
	left, err := e.term()
	if err != nil {
		return nil, err
	}
	for e.isPunct("+") {
		op := e.next()
		right, err := e.term()
		if err != nil {
			return nil, err
		}
		left, err = concat(left, right)
		if err != nil {
			return nil, e.errorf(op, "%v", err)
		}
	}
	return left, nil
}

func concat(a, b Value) (Value, error) {
	switch x := a.(type) {
	case String:
		if y, ok := b.(String); ok {
			return x + y, nil
		}
	case List:
		if y, ok := b.(List); ok {
			out := make(List, 0, len(x)+len(y))
			out = append(out, x...)
			return append(out, y...), nil
		}
	case Int:
		if y, ok := b.(Int); ok {
			return x + y, nil
		}
	}
	return nil, fmt.Errorf("unsupported operand types for +: %s and %s", kindOf(a), kindOf(b))
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindNone
	}
	return v.Kind()
}

func (e *evaluator) term() (Value, error) {
	t := e.next()
	switch t.kind {
	case tokString:
		s := t.text
		// Adjacent literals concatenate.
		for e.peek().kind == tokString {
			s += e.next().text
		}
		return String(s), nil
	case tokInt:
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, e.errorf(t, "invalid integer %s", t.text)
		}
		return Int(n), nil
	case tokName:
		return e.name(t)
	case tokPunct:
		switch t.text {
		case "-":
			n := e.next()
			if n.kind != tokInt {
				return nil, e.errorf(n, "expected integer after '-', found %s", n)
			}
			v, err := strconv.ParseInt(n.text, 10, 64)
			if err != nil {
				return nil, e.errorf(n, "invalid integer %s", n.text)
			}
			return Int(-v), nil
		case "[":
			return e.list()
		case "{":
			return e.dict()
		case "(":
			v, err := e.expr()
			if err != nil {
				return nil, err
			}
			if err := e.expectPunct(")"); err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	return nil, e.errorf(t, "unexpected %s", t)
}

func isKeyword(name string) bool {
	switch name {
	case "None", "True", "False", "Var":
		return true
	}
	return false
}

func (e *evaluator) name(t token) (Value, error) {
	switch t.text {
	case "None":
		return None{}, nil
	case "True":
		return Bool(true), nil
	case "False":
		return Bool(false), nil
	case "Var":
		return e.varCall(t)
	}
	if e.isPunct("(") {
		return nil, e.errorf(t, "call to %s is not allowed; only Var() may be called", t.text)
	}
	return nil, e.errorf(t, "name %s is not defined", t.text)
}

func (e *evaluator) varCall(t token) (Value, error) {
	if err := e.expectPunct("("); err != nil {
		return nil, err
	}
	arg, err := e.expr()
	if err != nil {
		return nil, err
	}
	if err := e.expectPunct(")"); err != nil {
		return nil, err
	}
	name, ok := arg.(String)
	if !ok {
		return nil, e.errorf(t, "Var() expects a string argument, got %s", kindOf(arg))
	}
	return e.lookupVar(string(name))
}

func (e *evaluator) lookupVar(name string) (Value, error) {
	if v, ok := e.customVars[name]; ok {
		return String(v), nil
	}
	if vars, ok := e.doc.env["vars"].(*Dict); ok {
		if v, ok := vars.Get(name); ok {
			return v, nil
		}
	}
	return nil, &VarUndefinedError{Name: name}
}

func (e *evaluator) list() (Value, error) {
	out := List{}
	for {
		if e.isPunct("]") {
			e.next()
			return out, nil
		}
		v, err := e.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if e.isPunct(",") {
			e.next()
			continue
		}
		if err := e.expectPunct("]"); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (e *evaluator) dict() (Value, error) {
	out := NewDict()
	for {
		if e.isPunct("}") {
			e.next()
			return out, nil
		}
		kt := e.peek()
		k, err := e.expr()
		if err != nil {
			return nil, err
		}
		key, ok := k.(String)
		if !ok {
			return nil, e.errorf(kt, "dict keys must be strings, got %s", kindOf(k))
		}
		if err := e.expectPunct(":"); err != nil {
			return nil, err
		}
		v, err := e.expr()
		if err != nil {
			return nil, err
		}
		out.Set(string(key), v)
		if e.isPunct(",") {
			e.next()
			continue
		}
		if err := e.expectPunct("}"); err != nil {
			return nil, err
		}
		return out, nil
	}
}
