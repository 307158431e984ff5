// Package jmptable holds the in-memory tabular representation produced by
// the decoder in pkg/jmpfile: an ordered sequence of named, typed columns
// of equal length.
package jmptable
