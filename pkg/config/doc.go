// Package config loads vlist configuration files.
//
// Files are decoded as YAML, validated against the JSON schema of their kind,
// and then checked for the constraints the schema cannot express.
package config
