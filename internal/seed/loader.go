// Package seed imports mapping rules from a YAML file into the mapping table.
package seed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// File is the seed document.
//
//	mappings:
//	  - internal: http://files.local
//	    external: https://pub.example.com
//	    enabled: true   # optional, defaults to true
type File struct {
	Mappings []Entry `yaml:"mappings"`
}

// Entry is one seeded mapping.
type Entry struct {
	Internal string `yaml:"internal"`
	External string `yaml:"external"`
	Enabled  *bool  `yaml:"enabled"`
}

// IsEnabled reports the entry's enabled flag, true when unset.
func (e Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// Loader reads a seed file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the seed file location.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the seed file, expanding ${VAR} references from the
// environment first.
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandEnv(data)

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return &f, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} with the value of the environment variable NAME.
// Unset variables expand to the empty string.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRef.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
