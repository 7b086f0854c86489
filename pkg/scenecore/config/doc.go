// Package config provides file-backed tuning configuration for the
// lifecycle core.
//
// Config wraps a plain map with typed accessors so engine wiring code
// can read tuning values without hand-rolled type switches:
//
//	cfg, err := config.FromFile("engine.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	warn := cfg.Duration("frame_warn_budget", 32*time.Millisecond)
//
// YAML and JSON files are supported, auto-detected by extension. The
// root scenecore package translates a Config into Manager and Loader
// options; see scenecore.ManagerOptionsFromConfig.
package config
