// Package config loads YAML configuration files for the matchtype CLI.
//
// A config is referenced either by path ("./team.yaml") or by name ("team"),
// in which case ./team.yaml, ./team.yml and then the user config directory
// (~/.config/go-matchtype/ on Linux) are searched.
//
// Example:
//
//	limits:
//	  maxInputLength: 10000
//	  maxKeywords: 1000
//	  cooldown: 100ms
//	convert:
//	  target: exact
//	output:
//	  format: json
package config
