// Package manifest records what went into a submission archive.
//
// A Manifest maps archived filenames to base64-encoded SHA-512 checksums and
// is saved as YAML next to the archive it describes. The verifier uses it to
// confirm an archive still matches what the packager produced.
package manifest
