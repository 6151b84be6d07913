package lexicon

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxDecodePasses bounds percent-decoding: clients encode once or twice.
const maxDecodePasses = 2

// mojibakeSigns are lead characters produced when UTF-8 text is read one byte
// at a time as Windows-1252 or Latin-1 (Cyrillic lead bytes 0xD0/0xD1).
const mojibakeSigns = "ÐÑ"

// singleByteCharsets are tried in order when repairing mojibake.
var singleByteCharsets = []*charmap.Charmap{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// NormalizeHeadword repairs a raw query value into a clean headword.
// An empty result is valid and means there is nothing to look up.
//
// The function is idempotent on clean headwords only. A literal plus sent as
// %2B survives one pass ("c%2B%2B" → "c++") but is read as a space on the next,
// so callers must normalize a raw value exactly once.
func NormalizeHeadword(raw string, lang Language) string {
	s := strings.ReplaceAll(raw, "+", " ")
	s = percentDecode(s)

	if !lang.hasAlphabet(s) && strings.ContainsAny(s, mojibakeSigns) {
		if repaired, ok := repairMojibake(s); ok && lang.hasAlphabet(repaired) {
			s = repaired
		}
	}

	return strings.TrimSpace(s)
}

// percentDecode decodes s up to maxDecodePasses times, stopping at the first
// no-op or failure and keeping the last successfully decoded value.
func percentDecode(s string) string {
	for range maxDecodePasses {
		decoded, err := url.PathUnescape(s)
		if err != nil || decoded == s {
			break
		}
		s = decoded
	}
	return s
}

// repairMojibake re-encodes s under a single-byte charset and reads the
// resulting bytes back as UTF-8.
func repairMojibake(s string) (string, bool) {
	for _, cm := range singleByteCharsets {
		b, err := cm.NewEncoder().String(s)
		if err != nil {
			continue
		}
		if utf8.ValidString(b) {
			return b, true
		}
	}
	return "", false
}
