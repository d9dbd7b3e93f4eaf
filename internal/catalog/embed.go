package catalog

import (
	_ "embed"
	"errors"
)

//go:embed data/greatlakes.yaml
var defaultCatalog []byte

// DefaultContent returns the embedded base catalog document.
func DefaultContent() string {
	return string(defaultCatalog)
}

// rawBytesProvider implements koanf.Provider for in-memory documents.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
