package sources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog holds the configured news sources, loaded from per-source YAML
// files. Sources are never removed at runtime, only disabled.
type Catalog struct {
	sourcesDir string
	cache      map[string]*Source
	mu         sync.RWMutex
}

func NewCatalog(sourcesDir string) *Catalog {
	return &Catalog{
		sourcesDir: sourcesDir,
		cache:      make(map[string]*Source),
	}
}

func (c *Catalog) Run() error {
	if _, err := os.Stat(c.sourcesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.sourcesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		sourceName := strings.TrimSuffix(fileName, ".yml")

		source, err := c.LoadSource(sourceName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Source loaded", "source", sourceName, "enabled", source.Settings.Enabled, "category", source.Category)
	}

	return nil
}

func (c *Catalog) LoadSource(sourceName string) (*Source, error) {
	configFile := filepath.Join(c.sourcesDir, sourceName+".yml")

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	source.Name = sourceName
	setDefaults(&source)

	if err := validate(&source); err != nil {
		return nil, fmt.Errorf("invalid source %s: %w", configFile, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[source.Name] = &source

	return source.snapshot(), nil
}

func (c *Catalog) Get(sourceName string) (*Source, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	source, ok := c.cache[sourceName]
	if !ok {
		return nil, fmt.Errorf("source '%s' not found", sourceName)
	}
	return source.snapshot(), nil
}

// All returns every catalog entry sorted by name for deterministic iteration.
// Returned sources are snapshots: Toggle may run concurrently, so live
// pointers must never leave the lock.
func (c *Catalog) All() []*Source {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make([]*Source, 0, len(c.cache))
	for _, s := range c.cache {
		all = append(all, s.snapshot())
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (c *Catalog) Enabled() []*Source {
	c.mu.RLock()
	defer c.mu.RUnlock()

	enabled := make([]*Source, 0, len(c.cache))
	for _, s := range c.cache {
		if s.Settings.Enabled {
			enabled = append(enabled, s.snapshot())
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i].Name < enabled[j].Name })
	return enabled
}

func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Catalog) EnabledCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, s := range c.cache {
		if s.Settings.Enabled {
			count++
		}
	}
	return count
}

// Toggle flips the enabled flag of a source at runtime. The on-disk
// configuration is not rewritten; the change lasts until restart.
func (c *Catalog) Toggle(sourceName string, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	source, ok := c.cache[sourceName]
	if !ok {
		return fmt.Errorf("source '%s' not found", sourceName)
	}
	source.Settings.Enabled = enabled
	return nil
}

func setDefaults(source *Source) {
	if source.Settings.MaxItems == 0 {
		source.Settings.MaxItems = 10
	}
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 20
	}
	if source.Category == "" {
		source.Category = "General"
	}
	if source.Credibility == 0 {
		source.Credibility = 0.5
	}
}

func validate(source *Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}

	requiredFields := map[string]string{
		"source name": source.Name,
		"source URL":  source.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if source.Credibility < 0 || source.Credibility > 1 {
		return fmt.Errorf("credibility must be within [0,1]")
	}

	nonNegativeFields := map[string]int{
		"max items": source.Settings.MaxItems,
		"timeout":   source.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}
