package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ExportConfig captures the settings of an export run. Fields left
// out of a TOML file keep the values already set by flags.
type ExportConfig struct {
	Scene       string  `toml:"scene"`
	Seed        uint32  `toml:"seed"`
	Cells       int     `toml:"cells"`
	Out         string  `toml:"out"`
	MaxDistance float32 `toml:"max_distance"`
}

// applyConfigFile overlays settings from a TOML file onto cfg.
func applyConfigFile(path string, cfg *ExportConfig) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s has unknown keys: %v", path, undecoded)
	}
	return nil
}
