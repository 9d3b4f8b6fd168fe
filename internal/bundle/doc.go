// Package bundle writes and reads zip archives with reproducible output.
//
// Entries are written in sorted order with a fixed timestamp and mode, so
// archiving the same tree twice yields byte-identical files.
package bundle
