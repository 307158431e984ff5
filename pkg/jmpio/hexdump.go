package jmpio

import "fmt"

// DumpHex renders data as upper-case hex pairs, perLine bytes to a line.
// Used by the header walk's MalformedHeader errors to show the unexpected
// tag bytes; a direct generalization of the hex-dump helpers the
// original reverse-engineered reader used while exploring the format.
func DumpHex(data []byte, perLine int) string {
	if perLine <= 0 {
		perLine = 16
	}

	s := ""
	for i, b := range data {
		if i%perLine == 0 && i != 0 {
			s += "\n"
		} else if i != 0 {
			s += " "
		}

		s += fmt.Sprintf("%02X", b)
	}

	return s
}
