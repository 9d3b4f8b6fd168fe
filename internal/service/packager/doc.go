// Package packager assembles submission archives from generated certificates.
//
// For each requested version it merges the ipd and non-ipd certificate trees
// into a temporary directory (ipd files win on duplicate names), writes a
// reproducible zip archive alongside a checksum manifest, and removes the
// merge directory when done.
package packager
