package config

import (
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/names"
)

// overridesDoc accepts both a bare mapping and one nested under
// "overrides":
//
//	overrides:
//	  http://schema.org/name: title
type overridesDoc struct {
	Overrides map[string]string `yaml:"overrides"`
}

// LoadOverrides reads a YAML file mapping resource IRIs to names.
func LoadOverrides(path string) (map[string]string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "overrides file %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open overrides %s", path)
	}
	defer f.Close()

	m, err := DecodeOverrides(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOverrides, err, "overrides %s", path)
	}
	return m, nil
}

// DecodeOverrides parses YAML overrides from r and rejects files that map
// two IRIs to one name.
func DecodeOverrides(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc overridesDoc
	m := map[string]string{}
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Overrides != nil {
		m = doc.Overrides
	} else if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOverrides, err, "decode YAML")
	}
	if err := names.ValidateOverrides(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MergeOverrides returns base with every entry of top applied over it.
func MergeOverrides(base, top map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(top))
	maps.Copy(out, base)
	maps.Copy(out, top)
	return out
}
