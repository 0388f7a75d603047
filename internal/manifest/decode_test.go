package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromiumDeps = `deps = {
  'src/breakpad/bar': 'http://google-breakpad.googlecode.com/svn/trunk/src@285',
  'foo/third_party/WebKit': '/trunk/deps/third_party/WebKit',
  'src/third_party/cygwin': '/trunk/deps/third_party/cygwin@3248',
}
deps_os = {
  'win': {
    'src/foosad/asdf': 'svn://random_server:123/asd/python_24@5580',
  },
  'mac': {
    'src/third_party/python_24': 'svn://random_server:123/trunk/python_24@5580',
  },
}
hooks = [
  {
    'pattern': '\\.(gif|jpe?g|pr0n|png)$',
    'action': ['python', 'image_indexer.py', '--all'],
  },
]`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(chromiumDeps, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/breakpad/bar",
		"foo/third_party/WebKit",
		"src/third_party/cygwin",
	}, m.Deps.Paths())

	dep, ok := m.Deps.Get("foo/third_party/WebKit")
	require.True(t, ok)
	assert.Equal(t, "/trunk/deps/third_party/WebKit", dep.URL)

	require.Contains(t, m.DepsOS, "mac")
	assert.Equal(t, []string{"src/third_party/python_24"}, m.DepsOS["mac"].Paths())
	assert.False(t, m.UseRelativePaths)

	require.Len(t, m.Hooks, 1)
	assert.Equal(t, `\.(gif|jpe?g|pr0n|png)$`, m.Hooks[0].Pattern)
	assert.Equal(t, []string{"python", "image_indexer.py", "--all"}, m.Hooks[0].Action)
}

func TestParseManifestIgnoresUnknownNames(t *testing.T) {
	m, err := ParseManifest("Boo = 'a'", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Deps.Len())
	assert.Empty(t, m.Hooks)
}

func TestParseManifestRelativePathsAndAbsent(t *testing.T) {
	m, err := ParseManifest(`
use_relative_paths = True
deps = {
  'src/t': 'svn://scm.t/trunk',
  'src/gone': None,
}`, nil)
	require.NoError(t, err)

	assert.True(t, m.UseRelativePaths)
	dep, ok := m.Deps.Get("src/gone")
	require.True(t, ok)
	assert.True(t, dep.Absent)
}

func TestParseManifestShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"deps not a dict", `deps = ['a']`},
		{"dep url not a string", `deps = {'a': 1}`},
		{"vars value not a string", `vars = {'a': ['b']}`},
		{"deps_os not a dict", `deps_os = 'win'`},
		{"hook without action", `hooks = [{'pattern': '.'}]`},
		{"hook with empty action", `hooks = [{'pattern': '.', 'action': []}]`},
		{"relative paths not bool", `use_relative_paths = 'yes'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(tt.text, nil)
			var merr *ManifestError
			require.True(t, errors.As(err, &merr), "got %v", err)
		})
	}
}

func TestParseSolutions(t *testing.T) {
	sols, doc, err := ParseSolutions(`solutions = [ {
  'name': 'src',
  'url': 'svn://host/trunk/src',
  'custom_deps': {
    'src/b': None,
    'src/n': 'svn://custom.n/trunk',
  },
  'custom_vars': {'webkit': '/trunk/bar_custom/'},
  'safesync_url': 'http://lkgr/',
}, {
  'name': 'other',
  'url': 'svn://host/other',
  'custom_deps': {},
} ]`)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, sols, 2)

	src := sols[0]
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, "svn://host/trunk/src", src.URL)
	assert.Equal(t, []string{"src/b", "src/n"}, src.CustomDeps.Paths())
	b, _ := src.CustomDeps.Get("src/b")
	assert.True(t, b.Absent)
	assert.Equal(t, map[string]string{"webkit": "/trunk/bar_custom/"}, src.CustomVars)
	assert.Equal(t, "http://lkgr/", src.SafesyncURL)

	assert.Equal(t, "other", sols[1].Name)
	assert.Equal(t, 0, sols[1].CustomDeps.Len())
	assert.Empty(t, sols[1].SafesyncURL)
}

func TestParseSolutionsMissingBinding(t *testing.T) {
	sols, _, err := ParseSolutions("client = 'my client'")
	require.NoError(t, err)
	assert.Empty(t, sols)
}

func TestParseSolutionsRejectsDuplicatesAndMissingName(t *testing.T) {
	_, _, err := ParseSolutions(`solutions = [{'name': 'a', 'url': 'u'}, {'name': 'a', 'url': 'v'}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate solution name")

	_, _, err = ParseSolutions(`solutions = [{'url': 'u'}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name" is required`)
}

func TestEntriesRoundTrip(t *testing.T) {
	text := FormatEntries([]string{"src", "src/third_party/cygwin"})
	assert.Equal(t, "entries = [\n  \"src\",\n  \"src/third_party/cygwin\",\n]\n", text)

	paths, err := ParseEntries(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "src/third_party/cygwin"}, paths)
}

func TestEntriesRoundTripEscapes(t *testing.T) {
	in := []string{"a\x01b", "caf\xe9", "zero\u200bwidth", "tab\there", `quo"te\`}
	paths, err := ParseEntries(FormatEntries(in))
	require.NoError(t, err)
	assert.Equal(t, in, paths)
}

func TestParseEntriesBadEscape(t *testing.T) {
	for _, text := range []string{
		`entries = ["a\xZ1"]`,
		`entries = ["a\u12"]`,
		`entries = ["a\UFFFFFFFF"]`,
	} {
		_, err := ParseEntries(text)
		assert.Error(t, err, text)
	}
}

func TestParseEntriesLegacyDict(t *testing.T) {
	paths, err := ParseEntries(`entries = {'a': 'svn://a', 'b': None}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, paths)
}

func TestDepsOverlay(t *testing.T) {
	d := NewDeps()
	d.Set("a", Dep{URL: "1"})
	d.Set("c", Dep{URL: "3"})
	assert.Equal(t, []string{"a", "c"}, d.Paths())

	o := NewDeps()
	o.Set("a", Dep{URL: "override"})
	o.Set("n", Dep{URL: "new"})
	d.Overlay(o)
	assert.Equal(t, []string{"a", "c", "n"}, d.Paths())
	a, _ := d.Get("a")
	assert.Equal(t, "override", a.URL)
}
