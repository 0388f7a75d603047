package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RevInfo is the checked-out location of one path.
type RevInfo struct {
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
	Revision int    `yaml:"revision"`
}

// RevInfo resolves the dependency set without touching the working tree and
// reports what every present checkout is synced to, sorted by path.
func (c *Client) RevInfo(ctx context.Context) ([]RevInfo, error) {
	resolved, err := c.RunOnDeps(ctx, "revinfo", nil)
	if err != nil {
		return nil, err
	}

	var out []RevInfo
	for _, e := range resolved {
		d := c.driver(e.URL, e.Path)
		if !c.env.Host.Exists(d.CheckoutPath()) || d.Foreign() {
			continue
		}
		info, err := c.env.VCS.Info(ctx, filepath.Join(d.CheckoutPath(), "."), c.RootDir)
		if err != nil {
			return nil, err
		}
		out = append(out, RevInfo{Path: e.Path, URL: info.URL, Revision: info.Revision})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// PrintRevInfo writes the RevInfo report as "path: url@rev" blocks, or as
// YAML when asYAML is set.
func (c *Client) PrintRevInfo(ctx context.Context, w io.Writer, asYAML bool) error {
	infos, err := c.RevInfo(ctx)
	if err != nil {
		return err
	}
	return WriteRevInfo(w, infos, asYAML)
}

// WriteRevInfo renders infos to w.
func WriteRevInfo(w io.Writer, infos []RevInfo, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding revinfo: %w", err)
		}
		return enc.Close()
	}

	lines := make([]string, len(infos))
	for i, ri := range infos {
		lines[i] = fmt.Sprintf("%s: %s@%d", ri.Path, ri.URL, ri.Revision)
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, ";\n\n"))
	return err
}
