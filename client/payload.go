package client

import "strings"

// Pair is a single name/value pair of a form payload.
type Pair struct {
	Name  string
	Value string
}

// Payload is the ordered list of pairs sent with a form submission.
type Payload []Pair

// Encode joins the pairs as name=value with '&'. Values are escaped
// like the browser's encodeURIComponent, names are written verbatim.
func (p Payload) Encode() string {
	var sb strings.Builder

	for i, pair := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(pair.Name)
		sb.WriteByte('=')
		sb.WriteString(EscapeComponent(pair.Value))
	}

	return sb.String()
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes every byte of s outside of
// A-Z a-z 0-9 - _ . ! ~ * ' ( ). Space becomes %20, not '+'.
func EscapeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}

	return string(buf)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
