package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadDefaults populates target's declared fields from a TOML document on
// disk: the on-disk format get_options()'s "user-friendly defaults"
// instance is persisted in between host sessions, one table of
// name=value pairs per machine's option set.
func LoadDefaults(path string, target Struct) error {
	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: decoding defaults %s: %w", path, err)
	}

	for name, value := range raw {
		switch v := value.(type) {
		case string:
			target.Set(name, v)
		case bool:
			target.Set(name, v)
		case int64:
			target.Set(name, v)
		case float64:
			target.Set(name, v)
		}
	}
	return nil
}

// SaveDefaults writes target's current declared-field values out as a
// TOML document, for the host to edit by hand between sessions if it
// wants to.
func SaveDefaults(path string, target Struct) error {
	raw := map[string]any{}
	for _, f := range target.Fields() {
		if v, ok := target.Get(f.Name); ok {
			raw[f.Name] = v
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("config: encoding defaults: %w", err)
	}
	return nil
}
