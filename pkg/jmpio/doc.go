// Package jmpio provides positioned, little-endian byte access over a
// memory-mapped, read-only file. It is the lowest layer of the JMP table
// decoder: every other package reads through a *Source and never touches
// the filesystem directly.
package jmpio
