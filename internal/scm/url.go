package scm

import (
	"path/filepath"
	"strings"
)

// SplitURLRevision splits "url@rev" into its parts. An '@' only counts as a
// revision separator in the last path segment, so user@host authorities are
// left alone.
func SplitURLRevision(url string) (base, rev string) {
	i := strings.LastIndex(url, "@")
	if i < 0 || i < strings.LastIndex(url, "/") {
		return url, ""
	}
	return url[:i], url[i+1:]
}

// WithRevision replaces any revision suffix of url with rev. An empty rev
// returns url unchanged.
func WithRevision(url, rev string) string {
	if rev == "" {
		return url
	}
	base, _ := SplitURLRevision(url)
	return base + "@" + rev
}

// IsRelativeURL reports whether url is anchored at the owning solution's
// repository rather than being absolute.
func IsRelativeURL(url string) bool {
	return strings.HasPrefix(url, "/")
}

// Depth returns the number of segments in a checkout path.
func Depth(relPath string) int {
	n := 0
	for _, seg := range strings.FieldsFunc(filepath.ToSlash(relPath), func(r rune) bool { return r == '/' }) {
		if seg != "." {
			n++
		}
	}
	return n
}

// AnchorURL drops strip trailing path segments from url, never cutting into
// the scheme or authority, and appends rel.
func AnchorURL(url string, strip int, rel string) string {
	prefix, path := url, ""
	if i := strings.Index(url, "://"); i >= 0 {
		if j := strings.Index(url[i+3:], "/"); j >= 0 {
			prefix, path = url[:i+3+j], url[i+3+j:]
		}
	}

	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	keep := len(segs) - strip
	if keep < 0 {
		keep = 0
	}

	out := prefix
	if keep > 0 {
		out += "/" + strings.Join(segs[:keep], "/")
	}
	return out + rel
}
