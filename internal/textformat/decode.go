package textformat

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbacks are tried in order when the input is not valid UTF-8.
var fallbacks = []struct {
	name string
	enc  encoding.Encoding
}{
	{name: "windows-1251", enc: charmap.Windows1251},
	{name: "iso-8859-1", enc: charmap.ISO8859_1},
}

// decode returns the input as a string together with the encoding that
// produced it.
func decode(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8"
	}
	for _, fb := range fallbacks {
		out, err := fb.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		// charmap substitutes undefined bytes instead of failing.
		if strings.ContainsRune(string(out), utf8.RuneError) {
			continue
		}
		return string(out), fb.name
	}
	// ISO 8859-1 defines every byte, so this is not reached in practice.
	return string(raw), "raw"
}

// significantLines strips comments and whitespace and drops empty lines.
func significantLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if i := strings.IndexByte(ln, '#'); i >= 0 {
			ln = ln[:i]
		}
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
