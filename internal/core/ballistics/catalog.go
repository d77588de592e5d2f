package ballistics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogConfig is the YAML layout of a shell catalogue.
type CatalogConfig struct {
	Shells []ShellSpec `yaml:"shells"`
}

// Catalog is a named set of shell presets, kept in declaration order.
type Catalog struct {
	shells map[string]ShellSpec
	order  []string
}

func NewCatalog() *Catalog {
	return &Catalog{shells: make(map[string]ShellSpec)}
}

// DefaultCatalog returns the built-in presets. ap-75 is the stock tank
// round; the others are tuned around it.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, s := range []ShellSpec{
		{Name: "ap-75", Kind: ShellAP, CaliberMM: 75, BaseDamage: 160, PenetrationAt100m: 120, PenetrationLossPer100m: 15, MaxRicochets: 3, RicochetSpeedRetention: 1, MuzzleSpeed: 100},
		{Name: "apcr-75", Kind: ShellAPCR, CaliberMM: 75, BaseDamage: 140, PenetrationAt100m: 170, PenetrationLossPer100m: 25, MaxRicochets: 2, RicochetSpeedRetention: 1, MuzzleSpeed: 140},
		{Name: "heat-105", Kind: ShellHEAT, CaliberMM: 105, BaseDamage: 220, PenetrationAt100m: 200, PenetrationLossPer100m: 0, MaxRicochets: 1, RicochetSpeedRetention: 1, MuzzleSpeed: 80},
		{Name: "ap-152", Kind: ShellAP, CaliberMM: 152, BaseDamage: 450, PenetrationAt100m: 180, PenetrationLossPer100m: 20, MaxRicochets: 1, RicochetSpeedRetention: 1, MuzzleSpeed: 70},
	} {
		// presets are unique and named
		_ = c.Add(s)
	}
	return c
}

// LoadCatalog decodes a YAML catalogue.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var cfg CatalogConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return NewCatalog(), nil
		}
		return nil, fmt.Errorf("decode shell catalog: %w", err)
	}
	c := NewCatalog()
	for _, s := range cfg.Shells {
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalogFile reads a YAML catalogue from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shell catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Add registers a shell after clamping its values.
func (c *Catalog) Add(s ShellSpec) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrEmptyShellName
	}
	if _, exists := c.shells[s.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateShell, s.Name)
	}
	c.shells[s.Name] = s.Normalized()
	c.order = append(c.order, s.Name)
	return nil
}

// Merge copies every shell of other into c, replacing same-named entries.
func (c *Catalog) Merge(other *Catalog) {
	for _, name := range other.order {
		if _, exists := c.shells[name]; !exists {
			c.order = append(c.order, name)
		}
		c.shells[name] = other.shells[name]
	}
}

func (c *Catalog) Get(name string) (ShellSpec, error) {
	s, ok := c.shells[name]
	if !ok {
		return ShellSpec{}, fmt.Errorf("%w: %s", ErrUnknownShell, name)
	}
	return s, nil
}

func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Len() int { return len(c.order) }

// Encode writes the catalogue as YAML.
func (c *Catalog) Encode(w io.Writer) error {
	cfg := CatalogConfig{Shells: make([]ShellSpec, 0, len(c.order))}
	for _, name := range c.order {
		cfg.Shells = append(cfg.Shells, c.shells[name])
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
