package provision

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Manifest is an ordered list of dependency entries loaded from a
// requirements file. Entries keep their version constraints verbatim;
// lookup keys are derived with DependencyName.
type Manifest struct {
	Path    string
	Entries []string
}

// LoadManifest reads a manifest file from disk. Blank lines and lines
// starting with '#' are skipped.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	entries, err := parseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return &Manifest{Path: path, Entries: entries}, nil
}

func parseManifest(r io.Reader) ([]string, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Names returns the lookup keys for all entries, in manifest order
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		names = append(names, DependencyName(e))
	}
	return names
}

// Len returns the number of installable entries
func (m *Manifest) Len() int {
	return len(m.Entries)
}

// DependencyName strips the version constraint and any extras marker from a
// manifest entry, leaving the bare package name used for existence checks.
// "numpy==1.2.3" and "numpy>=1.2" both yield "numpy".
func DependencyName(entry string) string {
	name := entry
	if i := strings.IndexAny(name, "=<>~! ;["); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
