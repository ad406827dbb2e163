// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file parsing, expression evaluation and
// translation of the HCL schema into the format-agnostic config.Model.
//
// Expressions are evaluated with an `env` object holding the process
// environment and a small set of string functions (upper, lower, title,
// trimspace, format, join).
package hcl
