package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/vizgrid/pkg/errors"
)

// FileNames are the configuration files looked up in the root directory by
// [Find], in order.
var FileNames = []string{"vizgrid.toml", "vizgrid.yaml", "vizgrid.yml"}

// Find returns the first of [FileNames] present in dir, or "" if none is.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", errors.IO(err, p)
		}
		if info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", nil
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) configuration file, applies
// defaults and validates it.
//
// A relative Root in the file is resolved against the file's directory; an
// empty Root means the file's directory. A non-empty root argument overrides
// both. The returned Root is always absolute.
func Load(path, root string) (*Config, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.IO(err, path)
	}

	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	switch {
	case root != "":
		c.Root = root
	case c.Root == "":
		c.Root = filepath.Dir(path)
	case !filepath.IsAbs(c.Root):
		c.Root = filepath.Join(filepath.Dir(path), c.Root)
	}
	if err := c.finish(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes configuration data. ext selects the format (".toml", ".yaml"
// or ".yml"). Unknown keys are rejected. Defaults are not applied.
func Parse(data []byte, ext string) (*Config, error) {
	var c Config
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return &c, nil
}

// Resolve returns the configuration used for root: the file at path when
// given, else a config file found in root, else [Default].
//
// root overrides the root recorded in a config file. When both are empty the
// current directory is used.
func Resolve(path, root string) (*Config, error) {
	if path != "" {
		return Load(path, root)
	}
	dir := root
	if dir == "" {
		dir = "."
	}
	found, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if found != "" {
		return Load(found, root)
	}
	c := Default(dir)
	if err := c.finish(); err != nil {
		return nil, err
	}
	return c, nil
}

// finish applies defaults, makes Root absolute and validates.
func (c *Config) finish() error {
	c.SetDefaults()
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "root %s", c.Root)
	}
	c.Root = abs
	return c.Validate()
}
