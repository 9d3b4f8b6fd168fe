// Package config defines the directory layout settings used by binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Every field has a default, so the binaries work without a settings file:
// certificate trees are looked up under ./artifacts and archives are written
// to ./artifacts/submission.
package config
