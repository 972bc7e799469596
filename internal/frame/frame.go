// Package frame validates and decodes the textual hex frames typed at
// the console.  A frame is an even-length run of hex digits; spaces are
// permitted anywhere and ignored.
package frame

import (
	"encoding/hex"
	"fmt"
	"strings"

	"ptzcon/internal/errors"
)

// Validate strips every space from text and checks that what remains is
// an even-length string of hex digits.  The stripped string is the
// canonical frame.
func Validate(text string) (string, error) {
	stripped := strings.ReplaceAll(text, " ", "")

	for i := 0; i < len(stripped); i++ {
		if !isHexDigit(stripped[i]) {
			return "", errors.Malformed(text, i,
				fmt.Sprintf("non-hex character %q", stripped[i]))
		}
	}
	if len(stripped)%2 != 0 {
		return "", errors.Malformed(text, -1,
			fmt.Sprintf("odd number of hex digits (%d)", len(stripped)))
	}
	return stripped, nil
}

// Decode validates text and returns the bytes it encodes.
func Decode(text string) ([]byte, error) {
	canonical, err := Validate(text)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(canonical)
}

// Format renders b as upper-case hex pairs separated by spaces, the
// way frames are echoed back to the operator.
func Format(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
