// Package config loads puzzle configurations from a directory.
//
// Configurations are JSON or YAML files named <id>.json, <id>.yaml or
// <id>.yml. Each document is checked against an embedded JSON schema and
// then against the puzzle rules before it is cached.
//
// Default selection:
//   - classic, when present and valid
//   - otherwise the first valid file in name order
//   - otherwise the built-in classic puzzle
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg, err := manager.LoadConfig("classic")
//	configs, err := manager.ListConfigs()
//
// Saved configurations are always written as JSON.
package config
