package config

import (
	"fmt"
	"sort"
	"strings"
)

// osKeys maps platform names to the deps_os keys manifests use.
var osKeys = map[string]string{
	"win":     "win",
	"win32":   "win",
	"windows": "win",
	"cygwin":  "win",
	"mac":     "mac",
	"darwin":  "mac",
	"unix":    "unix",
	"linux":   "unix",
	"freebsd": "unix",
	"openbsd": "unix",
	"netbsd":  "unix",
}

// ResolveOS returns the deps_os key for a platform or key name.
func ResolveOS(name string) (string, error) {
	key, ok := osKeys[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown deps os '%s'; known: %s", name, strings.Join(KnownOS(), ", "))
	}
	return key, nil
}

// KnownOS returns every distinct deps_os key, sorted.
func KnownOS() []string {
	seen := map[string]bool{}
	var keys []string
	for _, k := range osKeys {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// DepsOSNames returns the deps_os keys to merge for a run. The override list
// wins over the platform; platforms outside the table classify as unix.
func DepsOSNames(platform, override string) ([]string, error) {
	if strings.TrimSpace(override) == "" {
		key, err := ResolveOS(platform)
		if err != nil {
			return []string{"unix"}, nil
		}
		return []string{key}, nil
	}

	var names []string
	seen := map[string]bool{}
	for _, part := range strings.Split(override, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "all" {
			return KnownOS(), nil
		}
		key, err := ResolveOS(part)
		if err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
	return names, nil
}
