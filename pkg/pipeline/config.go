package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sparsestress/pkg/errors"
)

// LoadConfig reads Options from a TOML (.toml) or YAML (.yaml, .yml) file.
// Unknown keys are rejected. Defaults are not applied.
//
//	pivots = 50
//	iterations = 200
//	sampler = "kmeans"
//	features = 20
//	break_condition = true
func LoadConfig(path string) (Options, error) {
	var opts Options
	if err := errors.ValidateExtension(path, ".toml", ".yaml", ".yml"); err != nil {
		return opts, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &opts)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return opts, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		return opts, nil
	}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return opts, nil
}
