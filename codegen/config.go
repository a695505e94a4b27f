package codegen

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/emer/netgen/ir"
)

// Config is the process-wide, immutable set of generation-time
// preference flags (spec.md §9: "treat them as an immutable
// configuration struct passed to the generator, not as mutable
// globals"). It can be populated by hand or decoded from a TOML
// options file.
type Config struct {
	OutDir    string `toml:"out_dir"`
	Precision string `toml:"precision"` // "single" or "double"

	// AutoRefractory is the network-wide default applied, via
	// flagbool.Bool.OrDefault, to every neuron group that left its own
	// AutoRefractory flag unset in the network file — a group that
	// explicitly set its own value keeps it.
	AutoRefractory bool `toml:"auto_refractory"`
	// WarningsAsErrors promotes every diagnostic warning to a fatal
	// error, for CI-style strict runs.
	WarningsAsErrors bool `toml:"warnings_as_errors"`
	// Keep leaves partially-written output files on disk after a
	// fatal error, for post-mortem inspection; the default removes
	// them (spec.md §7).
	Keep bool `toml:"keep"`
}

// LoadConfig decodes a TOML options file into a Config.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("codegen: decoding config %s: %w", path, err)
	}
	return &cfg, nil
}

// PrecisionTag resolves the configured precision string into the IR's
// Precision type, defaulting to single.
func (c *Config) PrecisionTag() ir.Precision {
	if c.Precision == "double" {
		return ir.Double
	}
	return ir.Single
}
