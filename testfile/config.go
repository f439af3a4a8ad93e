package testfile

import (
	"fmt"

	"github.com/pelletier/go-toml"
)

// Settings which can come from a toml config file. Anything not given in the
// file keeps the default.
type Config struct {
	Output      string
	Fill        byte
	ChunkSize   int
	Strict      bool
	Preallocate bool
}

func DefaultConfig() Config {
	return Config{
		Output:    DefaultOutput,
		Fill:      FillByte,
		ChunkSize: ChunkSize,
	}
}

// Produce generator options from the config for the given multiplier
func (c *Config) Options(multiplier int64) Options {
	return Options{
		Output:      c.Output,
		Multiplier:  multiplier,
		ChunkSize:   c.ChunkSize,
		Fill:        c.Fill,
		Preallocate: c.Preallocate,
	}
}

// Load the toml config at path over the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	tree, err := toml.LoadFile(path)
	if err != nil {
		return config, fmt.Errorf("couldn't parse config %s: %w", path, err)
	}
	if err = config.apply(tree); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Same as LoadConfig but from a string, mostly for tests
func ParseConfig(raw string) (Config, error) {
	config := DefaultConfig()
	tree, err := toml.Load(raw)
	if err != nil {
		return config, fmt.Errorf("couldn't parse config: %w", err)
	}
	return config, config.apply(tree)
}

func (c *Config) apply(tree *toml.Tree) error {
	for _, key := range tree.Keys() {
		value := tree.Get(key)
		wrongType := func(expect string) error {
			return fmt.Errorf("%s: %s must be %s, got %T", tree.GetPosition(key), key, expect, value)
		}
		switch key {
		case "output":
			s, ok := value.(string)
			if !ok {
				return wrongType("a string")
			}
			if s == "" {
				return fmt.Errorf("%s: output can't be empty", tree.GetPosition(key))
			}
			c.Output = s
		case "fill":
			i, ok := value.(int64)
			if !ok {
				return wrongType("an integer")
			}
			if i < 0 || i > 0xFF {
				return fmt.Errorf("%s: fill must be a byte value (0-255), got %d", tree.GetPosition(key), i)
			}
			c.Fill = byte(i)
		case "chunk_size":
			i, ok := value.(int64)
			if !ok {
				return wrongType("an integer")
			}
			if i <= 0 || i > 1<<30 {
				return fmt.Errorf("%s: chunk_size must be between 1 and %d, got %d", tree.GetPosition(key), 1<<30, i)
			}
			c.ChunkSize = int(i)
		case "strict":
			b, ok := value.(bool)
			if !ok {
				return wrongType("a boolean")
			}
			c.Strict = b
		case "preallocate":
			b, ok := value.(bool)
			if !ok {
				return wrongType("a boolean")
			}
			c.Preallocate = b
		default:
			return fmt.Errorf("%s: unknown config key %q", tree.GetPosition(key), key)
		}
	}
	return nil
}
