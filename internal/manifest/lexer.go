package manifest

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokName
	tokString
	tokInt
	tokPunct
)

type token struct {
	kind tokenKind
	text string // identifier, decoded string literal, digits or punctuation
	line int
	col  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "newline"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

// lexer splits manifest text into tokens. Newlines inside brackets are
// dropped so that literals may span lines.
type lexer struct {
	src   []rune
	pos   int
	line  int
	col   int
	depth int
}

func newLexer(text string) *lexer {
	return &lexer{src: []rune(text), line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &ManifestError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// tokens returns the whole token stream terminated by tokEOF.
func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		// Collapse blank lines.
		if tok.kind == tokNewline && (len(out) == 0 || out[len(out)-1].kind == tokNewline) {
			continue
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{kind: tokEOF, line: l.line, col: l.col}, nil
		}
		switch {
		case r == '#':
			for {
				r, ok := l.peekRune()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
		case r == '\\':
			// Explicit line continuation.
			line, col := l.line, l.col
			l.advance()
			if r, ok := l.peekRune(); ok && r == '\r' {
				l.advance()
			}
			if r, ok := l.peekRune(); !ok || r != '\n' {
				return token{}, l.errorf(line, col, "unexpected '\\'")
			}
			l.advance()
		case r == '\n':
			line, col := l.line, l.col
			l.advance()
			if l.depth == 0 {
				return token{kind: tokNewline, text: "\n", line: line, col: col}, nil
			}
		case r == ' ' || r == '\t' || r == '\r' || r == '\f':
			l.advance()
		case r == ';':
			line, col := l.line, l.col
			l.advance()
			return token{kind: tokNewline, text: ";", line: line, col: col}, nil
		case r == '\'' || r == '"':
			return l.lexString()
		case isDigit(r):
			return l.lexInt(), nil
		case isNameStart(r):
			return l.lexName(), nil
		default:
			return l.lexPunct()
		}
	}
}

func (l *lexer) lexPunct() (token, error) {
	line, col := l.line, l.col
	r := l.advance()
	switch r {
	case '[', '{', '(':
		l.depth++
	case ']', '}', ')':
		if l.depth == 0 {
			return token{}, l.errorf(line, col, "unbalanced %q", r)
		}
		l.depth--
	case '=', ',', ':', '+', '-':
	default:
		return token{}, l.errorf(line, col, "unexpected character %q", r)
	}
	return token{kind: tokPunct, text: string(r), line: line, col: col}, nil
}

func (l *lexer) lexName() token {
	line, col := l.line, l.col
	start := l.pos
	for {
		r, ok := l.peekRune()
		if !ok || !(isNameStart(r) || isDigit(r)) {
			break
		}
		l.advance()
	}
	return token{kind: tokName, text: string(l.src[start:l.pos]), line: line, col: col}
}

func (l *lexer) lexInt() token {
	line, col := l.line, l.col
	start := l.pos
	for {
		r, ok := l.peekRune()
		if !ok || !isDigit(r) {
			break
		}
		l.advance()
	}
	return token{kind: tokInt, text: string(l.src[start:l.pos]), line: line, col: col}
}

func (l *lexer) lexString() (token, error) {
	line, col := l.line, l.col
	quote := l.advance()

	// Triple-quoted strings may span lines.
	triple := false
	if l.pos+1 < len(l.src) && l.src[l.pos] == quote && l.src[l.pos+1] == quote {
		l.advance()
		l.advance()
		triple = true
	} else if l.pos < len(l.src) && l.src[l.pos] == quote {
		l.advance()
		return token{kind: tokString, line: line, col: col}, nil
	}

	var b strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{}, l.errorf(line, col, "unterminated string")
		}
		if r == '\n' && !triple {
			return token{}, l.errorf(line, col, "unterminated string")
		}
		if r == quote {
			if !triple {
				l.advance()
				break
			}
			if l.pos+2 < len(l.src) && l.src[l.pos+1] == quote && l.src[l.pos+2] == quote {
				l.advance()
				l.advance()
				l.advance()
				break
			}
		}
		if r == '\\' {
			l.advance()
			esc, ok := l.peekRune()
			if !ok {
				return token{}, l.errorf(line, col, "unterminated string")
			}
			l.advance()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case 'a':
				b.WriteByte('\a')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'v':
				b.WriteByte('\v')
			case 'x', 'u', 'U':
				v, err := l.lexHex(esc, line, col)
				if err != nil {
					return token{}, err
				}
				if esc == 'x' {
					// Raw byte, as written by strconv.Quote for invalid UTF-8.
					b.WriteByte(byte(v))
				} else {
					b.WriteRune(rune(v))
				}
			case '\\', '\'', '"':
				b.WriteRune(esc)
			case '\n':
				// Escaped newline joins lines.
			default:
				b.WriteRune('\\')
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(l.advance())
	}
	return token{kind: tokString, text: b.String(), line: line, col: col}, nil
}

// lexHex reads the fixed-width hex digits of a \x, \u or \U escape.
func (l *lexer) lexHex(esc rune, line, col int) (uint32, error) {
	n := 2
	switch esc {
	case 'u':
		n = 4
	case 'U':
		n = 8
	}
	var v uint32
	for i := 0; i < n; i++ {
		r, ok := l.peekRune()
		if !ok {
			return 0, l.errorf(line, col, "unterminated string")
		}
		d, ok := hexDigit(r)
		if !ok {
			return 0, l.errorf(l.line, l.col, "invalid \\%c escape", esc)
		}
		l.advance()
		v = v<<4 | d
	}
	if esc != 'x' && (v > utf8.MaxRune || (v >= 0xD800 && v < 0xE000)) {
		return 0, l.errorf(line, col, "invalid code point %#x", v)
	}
	return v, nil
}

func hexDigit(r rune) (uint32, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint32(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint32(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint32(r-'A') + 10, true
	}
	return 0, false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
