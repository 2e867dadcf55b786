// Package phonetic derives sound-alike search keys for user names. The key
// is a Soundex-style code computed per word, so "Claire" and "Clare" share
// a key and a substring match on the key finds either spelling.
package phonetic

import "strings"

// soundexCode maps an upper-case ASCII letter to its Soundex digit, or 0 for
// vowels and the letters Soundex ignores (H, W, Y).
func soundexCode(c byte) byte {
	switch c {
	case 'B', 'F', 'P', 'V':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	}
	return 0
}

// word encodes a single word as a four-character Soundex code. Words with no
// leading ASCII letter encode as "".
func word(s string) string {
	s = strings.ToUpper(s)

	// Skip to the first ASCII letter.
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	code := []byte{s[start]}
	prev := soundexCode(s[start])
	for i := start + 1; i < len(s) && len(code) < 4; i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			prev = 0
			continue
		}
		d := soundexCode(c)
		if d == 0 {
			// Vowels reset the run so repeated consonants separated by a
			// vowel encode twice; H, W, Y do not.
			if c != 'H' && c != 'W' && c != 'Y' {
				prev = 0
			}
			continue
		}
		if d != prev {
			code = append(code, d)
		}
		prev = d
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// Key returns the phonetic search key for a name: the Soundex code of each
// word, space-joined. Blank input yields "".
func Key(name string) string {
	fields := strings.Fields(name)
	codes := make([]string, 0, len(fields))
	for _, f := range fields {
		if c := word(f); c != "" {
			codes = append(codes, c)
		}
	}
	return strings.Join(codes, " ")
}
