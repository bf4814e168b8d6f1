package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadVerbsFile reads, validates, and decodes one verb configuration file.
func LoadVerbsFile(path string) (VerbsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VerbsConfig{}, fmt.Errorf("read verb config: %w", err)
	}

	// First decode untyped for schema validation, so unknown fields and
	// wrong types are caught instead of silently dropped by the typed
	// unmarshal.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return VerbsConfig{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := validateVerbsDoc(doc); err != nil {
		return VerbsConfig{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var cfg VerbsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return VerbsConfig{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadVerbsDir loads every .yaml/.yml file under dir (sorted, non-recursive)
// and merges their domains into one configuration. A domain defined in two
// files has its verbs merged; a verb defined twice is an error.
func LoadVerbsDir(dir string) (VerbsConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return VerbsConfig{}, fmt.Errorf("read verb config dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return VerbsConfig{}, fmt.Errorf("no verb config files in %s", dir)
	}

	merged := VerbsConfig{Domains: map[string]DomainConfig{}}
	for _, path := range paths {
		cfg, err := LoadVerbsFile(path)
		if err != nil {
			return VerbsConfig{}, err
		}
		if merged.Version == "" {
			merged.Version = cfg.Version
		}
		for domain, dc := range cfg.Domains {
			existing, ok := merged.Domains[domain]
			if !ok {
				merged.Domains[domain] = dc
				continue
			}
			if existing.Description == "" {
				existing.Description = dc.Description
			}
			if existing.Verbs == nil {
				existing.Verbs = map[string]VerbConfig{}
			}
			for action, vc := range dc.Verbs {
				if _, dup := existing.Verbs[action]; dup {
					return VerbsConfig{}, fmt.Errorf("%s: verb %s.%s defined twice", filepath.Base(path), domain, action)
				}
				existing.Verbs[action] = vc
			}
			merged.Domains[domain] = existing
		}
	}
	return merged, nil
}
