// Package grammar holds the character classes and productions of the generic URI grammar.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/urlparser/internal/constraints"
)

func init() {
	abnf.EnableNodeCache(1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

// IsCtl reports whether c is an US-ASCII control character (%x00-1F / %x7F).
func IsCtl(c byte) bool { return c < 0x20 || c == 0x7f }

// IsForbidden reports whether c must never appear raw in any URL component.
func IsForbidden(c byte) bool { return IsCtl(c) || c == ' ' }

// IndexForbidden returns the index of the first forbidden byte in s, or -1.
func IndexForbidden[T constraints.Byteseq](s T) int {
	for i := 0; i < len(s); i++ {
		if IsForbidden(s[i]) {
			return i
		}
	}
	return -1
}

func IsAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsDigits reports whether s is a non-empty run of DIGIT.
func IsDigits[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsDigit(s[i]) {
			return false
		}
	}
	return true
}

func IsHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// IsUnreserved reports whether c is in the RFC 3986 unreserved set.
func IsUnreserved(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

// IsSubDelim reports whether c is in the RFC 3986 sub-delims set.
func IsSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsIPvFuture reports whether s matches
//
//	IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )
func IsIPvFuture[T constraints.Byteseq](s T) bool {
	if len(s) < 4 || (s[0] != 'v' && s[0] != 'V') {
		return false
	}
	i := 1
	for i < len(s) && IsHexDigit(s[i]) {
		i++
	}
	if i == 1 || i >= len(s)-1 || s[i] != '.' {
		return false
	}
	for i++; i < len(s); i++ {
		if c := s[i]; !IsUnreserved(c) && !IsSubDelim(c) && c != ':' {
			return false
		}
	}
	return true
}
