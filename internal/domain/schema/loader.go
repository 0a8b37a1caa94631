package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the class spec for classID. If path carries a
// recognized extension it is tried verbatim; otherwise the YAML form is
// tried first, then the legacy JSON form. The first existing candidate wins.
func Load(classID, path string) (*ClassSpec, error) {
	var candidates []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		candidates = []string{path}
	default:
		candidates = []string{path + ".yaml", path + ".json"}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read class spec %s: %w", candidate, err)
		}
		return parse(classID, candidate, data)
	}

	return nil, fmt.Errorf("%w: %s (tried %s)", ErrSpecNotFound, classID, strings.Join(candidates, ", "))
}

func parse(classID, path string, data []byte) (*ClassSpec, error) {
	spec := &ClassSpec{ClassID: classID}

	var err error
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, spec)
	} else {
		err = yaml.Unmarshal(data, spec)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpecInvalid, path, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
