// Package lister provides spreadsheet file discovery for a single directory.
//
// It lists the top level of a directory using fastwalk, keeps the regular
// files whose names end with one of an ordered set of spreadsheet
// extensions, and returns them as records sorted by name together with a
// summary describing the scan.
package lister
