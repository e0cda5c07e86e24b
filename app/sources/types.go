package sources

// Source describes one configured news feed. Catalog entries are immutable
// except for Settings.Enabled, which may be toggled at runtime.
type Source struct {
	Name        string  // Derived from filename (without .yml extension)
	URL         string  `yaml:"url"`
	Category    string  `yaml:"category"`
	Credibility float64 `yaml:"credibility"`

	Settings SourceSettings `yaml:"settings"`
}

type SourceSettings struct {
	Enabled  bool `yaml:"enabled"`
	MaxItems int  `yaml:"max_items"`
	Timeout  int  `yaml:"timeout"` // seconds
}

// snapshot returns an independent copy safe to read after the catalog lock
// is released. Source holds no reference fields, so a value copy is enough.
func (s *Source) snapshot() *Source {
	copied := *s
	return &copied
}
