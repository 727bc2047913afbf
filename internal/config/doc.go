// Package config loads tuning settings for the rope and buffer packages.
//
// Settings are read from TOML:
//
//	[rope]
//	chunk_size = 192
//	rebalance_depth = 64
//
//	[buffer]
//	line_ending = "lf"
//
//	[logging]
//	level = "info"
//	format = "text"
//
// Keys that are missing keep their defaults. Unknown keys are rejected so
// typos surface as errors instead of being silently ignored.
//
// Typical use:
//
//	cfg, err := config.Load(f)
//	if err != nil {
//	    return err
//	}
//	buf := buffer.NewBuffer(cfg.BufferOptions(os.Stderr)...)
package config
