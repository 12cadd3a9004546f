package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// ConfigFlag reports whether a key is set in a configuration file. The
// dialect follows the file extension: .json, .toml, .ini, .yaml/.yml.
//
// A missing file or missing key is simply unsatisfied. Without an
// expected value, "set" means present and truthy: not null, not false,
// not blank. With one, the key must render to exactly that value.
type ConfigFlag struct {
	fs   ports.FileSystem
	path string
	key  string
	want string
}

// ConfigFlagSet creates a probe satisfied when key is set in the file
// at path. Nested keys use dots: "proxies.default.httpProxy". For .ini
// files the first dot separates section from key.
func ConfigFlagSet(fs ports.FileSystem, path, key string) ConfigFlag {
	return ConfigFlag{fs: fs, path: path, key: key}
}

// WithValue additionally requires the key to hold exactly want.
func (c ConfigFlag) WithValue(want string) ConfigFlag {
	c.want = want
	return c
}

// IsSatisfied implements step.Probe.
func (c ConfigFlag) IsSatisfied(context.Context) (bool, error) {
	path := ports.ExpandPath(c.path)
	if !c.fs.Exists(path) {
		return false, nil
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return false, err
	}

	value, found, err := c.lookup(data)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", c.path, err)
	}
	if !found {
		return false, nil
	}
	if c.want != "" {
		return render(value) == c.want, nil
	}
	return isSet(value), nil
}

// Describe implements step.Probe.
func (c ConfigFlag) Describe() string {
	if c.want != "" {
		return fmt.Sprintf("%s is %s in %s", c.key, c.want, c.path)
	}
	return fmt.Sprintf("%s set in %s", c.key, c.path)
}

func (c ConfigFlag) lookup(data []byte) (any, bool, error) {
	switch ext := strings.ToLower(filepath.Ext(c.path)); ext {
	case ".json":
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, false, err
		}
		value, found := descend(tree, c.key)
		return value, found, nil
	case ".toml":
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, false, err
		}
		value, found := descend(tree, c.key)
		return value, found, nil
	case ".yaml", ".yml":
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, false, err
		}
		value, found := descend(tree, c.key)
		return value, found, nil
	case ".ini":
		return lookupINI(data, c.key)
	default:
		return nil, false, fmt.Errorf("unsupported config dialect %q", ext)
	}
}

// descend walks a dotted key through nested maps.
func descend(tree map[string]any, key string) (any, bool) {
	var current any = tree
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// lookupINI resolves "section.key" against an ini document; a bare key
// reads the unnamed default section.
func lookupINI(data []byte, key string) (any, bool, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, false, err
	}
	section := ini.DefaultSection
	name := key
	if idx := strings.Index(key, "."); idx >= 0 {
		section = key[:idx]
		name = key[idx+1:]
	}
	sec, err := file.GetSection(section)
	if err != nil {
		return nil, false, nil
	}
	if !sec.HasKey(name) {
		return nil, false, nil
	}
	return sec.Key(name).String(), true, nil
}

func isSet(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

func render(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Ensure ConfigFlag implements step.Probe.
var _ step.Probe = ConfigFlag{}
