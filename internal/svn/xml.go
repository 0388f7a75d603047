package svn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/gclient-go/gclient/internal/scm"
)

var itemCodes = map[string]byte{
	"added":       'A',
	"conflicted":  'C',
	"deleted":     'D',
	"external":    'X',
	"ignored":     'I',
	"incomplete":  '!',
	"merged":      'G',
	"missing":     '!',
	"modified":    'M',
	"none":        ' ',
	"normal":      ' ',
	"obstructed":  '~',
	"replaced":    'R',
	"unversioned": '?',
	"":            ' ',
}

var propCodes = map[string]byte{
	"modified":   'M',
	"conflicted": 'C',
	"none":       ' ',
	"normal":     ' ',
	"":           ' ',
}

// DecodeInfo decodes the output of "svn info --xml" for a single target.
func DecodeInfo(data []byte) (*scm.Info, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing info xml: %w", err)
	}
	entry := doc.FindElement("./info/entry")
	if entry == nil {
		return nil, fmt.Errorf("parsing info xml: no entry element")
	}

	info := &scm.Info{
		NodeKind:       entry.SelectAttrValue("kind", ""),
		Path:           entry.SelectAttrValue("path", ""),
		URL:            childText(entry, "url"),
		RepositoryRoot: childText(entry, "repository/root"),
		Schedule:       childText(entry, "wc-info/schedule"),
		UUID:           optionalText(entry, "repository/uuid"),
		CopiedFromURL:  optionalText(entry, "wc-info/copy-from-url"),
		CopiedFromRev:  optionalText(entry, "wc-info/copy-from-rev"),
	}
	if rev := entry.SelectAttrValue("revision", ""); rev != "" {
		n, err := strconv.Atoi(rev)
		if err != nil {
			return nil, fmt.Errorf("parsing info xml: bad revision %q", rev)
		}
		info.Revision = n
	}
	return info, nil
}

// DecodeStatus decodes the output of "svn status --xml" into status entries
// with seven-column codes.
func DecodeStatus(data []byte) ([]scm.StatusEntry, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing status xml: %w", err)
	}

	entries := []scm.StatusEntry{}
	for _, target := range doc.FindElements("./status/target") {
		for _, e := range target.SelectElements("entry") {
			ws := e.SelectElement("wc-status")
			if ws == nil {
				continue
			}
			code, err := statusCode(ws)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.SelectAttrValue("path", ""), err)
			}
			entries = append(entries, scm.StatusEntry{Code: code, Path: e.SelectAttrValue("path", "")})
		}
	}
	return entries, nil
}

func statusCode(ws *etree.Element) (string, error) {
	code := []byte("       ")

	item := ws.SelectAttrValue("item", "")
	c, ok := itemCodes[item]
	if !ok {
		return "", fmt.Errorf("unknown item status %q", item)
	}
	code[0] = c

	props := ws.SelectAttrValue("props", "")
	c, ok = propCodes[props]
	if !ok {
		return "", fmt.Errorf("unknown props status %q", props)
	}
	code[1] = c

	if ws.SelectAttrValue("wc-locked", "") == "true" {
		code[2] = 'L'
	}
	if ws.SelectAttrValue("copied", "") == "true" {
		code[3] = '+'
	}
	if ws.SelectAttrValue("switched", "") == "true" {
		code[4] = 'S'
	}
	return string(code), nil
}

func childText(e *etree.Element, path string) string {
	if c := e.FindElement(path); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func optionalText(e *etree.Element, path string) *string {
	c := e.FindElement(path)
	if c == nil {
		return nil
	}
	s := strings.TrimSpace(c.Text())
	return &s
}
