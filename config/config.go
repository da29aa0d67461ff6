// Package config loads the file configuration of a run: pipe geometry,
// item templates, placement strategies and the optional audio and observer
// surfaces. TOML and YAML files are accepted; both are checked against an
// embedded JSON Schema before being overlaid on the defaults.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/pipe"
	"github.com/lixenwraith/into-the-hole/placement"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://github.com/lixenwraith/into-the-hole/config.schema.json"

var (
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	// ErrSchema wraps JSON Schema violations
	ErrSchema = errors.New("config: schema violation")
)

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

type Game struct {
	Mode             string  `toml:"mode" yaml:"mode" json:"mode"`
	RotationVelocity float64 `toml:"rotation_velocity" yaml:"rotation_velocity" json:"rotation_velocity"`
	Seed             uint64  `toml:"seed" yaml:"seed" json:"seed"`
}

// Items lists the pooled item templates by kind
type Items struct {
	Obstacles []string `toml:"obstacles" yaml:"obstacles" json:"obstacles"`
	Bonus     []string `toml:"bonus" yaml:"bonus" json:"bonus"`
	Prewarm   int      `toml:"prewarm" yaml:"prewarm" json:"prewarm"`
}

// Placer names a placement strategy and the templates it draws from
type Placer struct {
	Name      string   `toml:"name" yaml:"name" json:"name"`
	Templates []string `toml:"templates" yaml:"templates" json:"templates"`
}

type Audio struct {
	Enabled bool    `toml:"enabled" yaml:"enabled" json:"enabled"`
	Volume  float64 `toml:"volume" yaml:"volume" json:"volume"`
}

type Observer struct {
	Enabled bool   `toml:"enabled" yaml:"enabled" json:"enabled"`
	Addr    string `toml:"addr" yaml:"addr" json:"addr"`
}

// Config is the root of a configuration file
type Config struct {
	Pipe     pipe.Config `toml:"pipe" yaml:"pipe" json:"pipe"`
	Game     Game        `toml:"game" yaml:"game" json:"game"`
	Items    Items       `toml:"items" yaml:"items" json:"items"`
	Placers  []Placer    `toml:"placers" yaml:"placers" json:"placers"`
	Audio    Audio       `toml:"audio" yaml:"audio" json:"audio"`
	Observer Observer    `toml:"observer" yaml:"observer" json:"observer"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Pipe: pipe.DefaultConfig(),
		Game: Game{
			Mode:             "easy",
			RotationVelocity: parameter.RotationVelocity,
		},
		Items: Items{
			Obstacles: []string{parameter.TemplateCube, parameter.TemplateSpike, parameter.TemplateGate},
			Bonus:     []string{parameter.TemplateBonus},
			Prewarm:   parameter.PoolPrewarmPer,
		},
		Placers: []Placer{
			{Name: placement.NameRandom, Templates: []string{parameter.TemplateCube, parameter.TemplateSpike, parameter.TemplateBonus}},
			{Name: placement.NameSpiral, Templates: []string{parameter.TemplateCube, parameter.TemplateBonus}},
			{Name: placement.NameCircle, Templates: []string{parameter.TemplateGate}},
		},
		Audio: Audio{Enabled: true, Volume: 0.5},
		Observer: Observer{
			Addr: parameter.ObserverAddr,
		},
	}
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads path, validates it and overlays it on Default
func Load(path string) (Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(raw, f == formatYAML)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes a TOML document, or YAML when isYAML is set
func Parse(raw []byte, isYAML bool) (Config, error) {
	var doc map[string]any
	if isYAML {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return Config{}, err
		}
	} else {
		if err := toml.Unmarshal(raw, &doc); err != nil {
			return Config{}, err
		}
	}
	if err := validateSchema(doc); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if isYAML {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, err
		}
	} else {
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateSchema round-trips doc through JSON so the validator sees plain
// JSON values regardless of the source format
func validateSchema(doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Validate checks cross-field rules the schema cannot express
func (c Config) Validate() error {
	if err := c.Pipe.Validate(); err != nil {
		return err
	}
	if len(c.Placers) == 0 {
		return fmt.Errorf("%w: no placers", pipe.ErrInvalidConfig)
	}
	known := make(map[string]bool)
	for _, t := range c.Items.Obstacles {
		known[t] = true
	}
	for _, t := range c.Items.Bonus {
		if known[t] {
			return fmt.Errorf("%w: template %q is both obstacle and bonus", pipe.ErrInvalidConfig, t)
		}
		known[t] = true
	}
	for _, p := range c.Placers {
		if _, ok := placement.ByName(p.Name, p.Templates); !ok {
			return fmt.Errorf("%w: unknown placer %q", pipe.ErrInvalidConfig, p.Name)
		}
		if len(p.Templates) == 0 {
			return fmt.Errorf("%w: placer %s has no templates", pipe.ErrInvalidConfig, p.Name)
		}
		for _, t := range p.Templates {
			if !known[t] {
				return fmt.Errorf("%w: placer %s uses undeclared template %q", pipe.ErrInvalidConfig, p.Name, t)
			}
		}
	}
	return nil
}

// ItemPool builds and prewarms the item pool for the configured templates
func (c Config) ItemPool() (*pipe.ItemPool, error) {
	p := pipe.NewItemPool(c.Items.Obstacles, c.Items.Bonus...)
	for _, t := range p.Templates() {
		if err := p.Prewarm(t, c.Items.Prewarm); err != nil {
			return nil, fmt.Errorf("prewarm %s: %w", t, err)
		}
	}
	return p, nil
}

// Selector builds the placement strategy pool
func (c Config) Selector() (*placement.Selector, error) {
	placers := make([]placement.Placer, 0, len(c.Placers))
	for _, pc := range c.Placers {
		p, ok := placement.ByName(pc.Name, pc.Templates)
		if !ok {
			return nil, fmt.Errorf("%w: unknown placer %q", pipe.ErrInvalidConfig, pc.Name)
		}
		placers = append(placers, p)
	}
	return placement.NewSelector(placers...), nil
}

// Save writes c to path in the format implied by its extension
func (c Config) Save(path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
