// Package config loads application settings and layout files.
//
// Settings come from an optional TOML file, overridden by BUTTONGROUP_*
// environment variables:
//
//	[logging]
//	level = "info"
//
//	[layout]
//	path = "layout.toml"
//	watch = true
//	debounce = "100ms"
//
//	[actions]
//	scriptTimeout = "1s"
//	default = "log"
//
// A layout declares button groups and their buttons, in TOML or YAML:
//
//	[[groups]]
//	name = "size"
//	value = "m"
//	on_value_change = "log"
//
//	[[groups.buttons]]
//	value = "s"
//	label = "Small"
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment loading
//   - watcher: debounced layout file change events
package config
