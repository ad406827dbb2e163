// Package yamlconf provides the YAML implementation of the config.Loader
// interface. Keys mirror the HCL attribute names.
package yamlconf
