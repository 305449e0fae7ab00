// Package config defines the format-agnostic host configuration model and
// the Loader interface that reads it from a file.
//
// Two loaders are provided, chosen by file extension in LoadFile: HCL
// (.hcl) and YAML (.yaml, .yml). Both produce the same Model, which is then
// validated and filled with defaults by Model.Normalize.
package config
