// Package jmpfile decodes the proprietary binary table format produced by
// JMP 11. It reads a file through pkg/jmpio and produces a pkg/jmptable
// Table: the header walk locates per-column descriptor offsets, the
// descriptor parser reads each column's name, type, and attribute stream,
// and the value decoder interprets each column's raw row bytes according
// to its data type and format type.
package jmpfile
