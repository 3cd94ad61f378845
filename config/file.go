package config

import (
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// LoadFile reads a YAML layout file through b.
//
// Example:
//
//	company: Acme
//	product: Rocket
//	engine_dir: engine
//	project_dir: game
//	log_level: debug
func LoadFile(b core.Backend, path string) (*Config, error) {
	s, err := b.OpenRead(path, false)
	if err != nil {
		return nil, errors.WithOp(err, "load_layout", path)
	}
	defer func() { _ = s.Close() }()

	data, err := core.ReadAll(s)
	if err != nil {
		return nil, errors.WithOp(err, "load_layout", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WithOp(errors.Wrap(err, errors.CodeInvalidFile, "malformed layout file"), "load_layout", path)
	}
	return &cfg, nil
}
