package scanner

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding name is given
const DefaultEncoding = "utf-8"

// ResolveEncoding maps an encoding name ("utf-8", "latin1", "windows-1252",
// "utf-16le", "shift_jis", ...) to a decoder-capable encoding. WHATWG labels are
// tried first, then IANA names.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}

	candidates := []string{name}
	if alt := strings.ReplaceAll(name, "_", "-"); alt != name {
		candidates = append(candidates, alt)
	}
	if alt := strings.ReplaceAll(name, "-", ""); alt != name {
		candidates = append(candidates, alt)
	}

	for _, candidate := range candidates {
		if enc, err := htmlindex.Get(candidate); err == nil {
			return enc, nil
		}
		// ianaindex returns (nil, nil) for known but unsupported encodings
		if enc, err := ianaindex.IANA.Encoding(candidate); err == nil && enc != nil {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}
