// Package domain defines the core types and interfaces for the fixer service
package domain

import "io/fs"

// Entry is a cached resolution outcome
// OK=false means the URL is known and must be left as is
type Entry struct {
	URL string
	OK  bool
}

// None is the "known, no change" entry
var None = Entry{}

// FileTask is one file loaded for rewriting
type FileTask struct {
	Path string // as yielded by the Lister
	Text string // decoded content
	Mode fs.FileMode // permission bits to keep on rewrite
}

// BatchResult summarizes a FixFiles run
type BatchResult struct {
	Files   int `json:"files"`   // regular files visited
	Fixed   int `json:"fixed"`   // links replaced across all files
	Skipped int `json:"skipped"` // files skipped as undecodable
	Written int `json:"written"` // files rewritten on disk
}
