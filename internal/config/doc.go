// Package config defines the format-agnostic configuration model for the
// index generator, along with the Loader interface used to read it from a
// file.
//
// The `config.Model` only records what a file actually set. Defaults and
// validation are applied by the app package, after command-line overrides.
// Concrete loaders for HCL and YAML live in separate packages.
package config
