package catalog

import (
	"bytes"
	"fmt"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// LoadOptions configures catalog loading.
type LoadOptions struct {
	// OverridePath is an optional YAML file deep-merged over the embedded
	// catalog. Maps merge key by key; lists are replaced.
	OverridePath string
}

// Load reads the embedded catalog, applies the optional override file,
// expands the generated tables and validates the result.
func Load(opts LoadOptions) (*Catalog, error) {
	k := koanf.New(".")

	// 1. Embedded project catalog
	if err := k.Load(&rawBytesProvider{bytes: defaultCatalog}, koanfyaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
	}

	// 2. Override file
	if opts.OverridePath != "" {
		if err := k.Load(file.Provider(opts.OverridePath), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load catalog override from %s: %w", opts.OverridePath, err)
		}
	}

	doc, err := decode(k.Raw())
	if err != nil {
		return nil, err
	}

	c, err := build(doc)
	if err != nil {
		return nil, err
	}

	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// decode converts the merged koanf tree into a typed document. Unknown keys
// are rejected so that misspelled overrides fail loudly.
func decode(raw map[string]interface{}) (*document, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode merged catalog: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &doc, nil
}
