// Package submission contains core domain types for certificate submissions.
//
// It defines Version (which submission round is being packaged) along with
// the layout names derived from it: the source certificate tree, the merge
// directory, the archive and its manifest. The ipd subtree holds certificates
// generated under initial-public-draft object identifiers, the non-ipd
// subtree those generated under final identifiers.
package submission
