package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

const defaultConfigTemplate = `solutions = [
  { "name"        : {{quote .Name}},
    "url"         : {{quote .URL}},
    "custom_deps" : {
    },
    "safesync_url": {{quote .SafesyncURL}}
  },
]
`

var configTemplate = template.Must(
	template.New("gclient").
		Option("missingkey=error").
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		Parse(defaultConfigTemplate))

// RenderDefaultConfig renders a single-solution root configuration.
func RenderDefaultConfig(name, url, safesyncURL string) (string, error) {
	var buf bytes.Buffer
	err := configTemplate.Execute(&buf, struct {
		Name, URL, SafesyncURL string
	}{name, url, safesyncURL})
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return buf.String(), nil
}

// SolutionNameFromURL derives a solution name from the last path segment of
// url, ignoring any revision suffix.
func SolutionNameFromURL(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		url = url[i+3:]
	}
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	if i := strings.LastIndex(url, "@"); i > 0 {
		url = url[:i]
	}
	return url
}
