// Package config provides the configuration system for glyphfall.
//
// Configuration is read once at startup and resolved in three layers,
// higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. GLYPHFALL_* Environment │
//	├─────────────────────────────┤
//	│  1. config.toml             │  ← ~/.config/glyphfall/config.toml
//	├─────────────────────────────┤
//	│  0. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(loader.DefaultFS(), path, false)
//	if err != nil {
//	    return err
//	}
//	if err := config.ApplyOverrides(cfg, v); err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	params, err := cfg.Params()
//
// The resulting rain.Params value is immutable and is what the simulation
// consumes; nothing in the render loop reads Config directly.
package config
