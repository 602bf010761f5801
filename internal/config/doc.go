// Package config provides configuration loading, merging, and validation
// facilities for the engine.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for fields set in both):
//  1. Environment variables
//  2. JSON config file (path taken from the CONFIG environment variable)
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetEngineConfig] for the validated engine view.
package config
