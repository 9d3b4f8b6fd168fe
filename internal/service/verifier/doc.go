// Package verifier cross-checks submission archives against their manifests.
//
// For each requested version it compares archive entry names with the
// manifest in both directions, checks that every entry carries the version's
// expected encoding and re-hashes entry contents to confirm the recorded
// checksums, reporting every disagreement before failing.
package verifier
