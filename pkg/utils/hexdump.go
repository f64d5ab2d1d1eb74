package utils

import (
	"fmt"
	"strings"
)

// HexDump formats b as rows of 16 space separated hex bytes, each row
// after the first prefixed by indent.
func HexDump(b []byte, indent string) string {
	var sb strings.Builder
	for i, v := range b {
		switch {
		case i == 0:
		case i%16 == 0:
			sb.WriteString("\n")
			sb.WriteString(indent)
		default:
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}
