package grammar

import (
	"github.com/ghettovoice/abnf"
)

// schemeChar = ALPHA / DIGIT / "+" / "-" / "."
var schemeChar = abnf.Alt(
	"ALPHA / DIGIT / \"+\" / \"-\" / \".\"",
	alpha,
	digit,
	abnf.Literal("\"+\"", []byte{'+'}),
	abnf.Literal("\"-\"", []byte{'-'}),
	abnf.Literal("\".\"", []byte{'.'}),
)

var alpha = abnf.Alt(
	"ALPHA",
	abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
	abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
)

var digit = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})

// SchemeLen returns the length of the longest scheme token at the start of s, or 0 when s
// does not begin with ALPHA.
//
//	scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
//
// The repetition is matched one byte at a time: abnf repeat operators keep a node
// for every repetition count, which is quadratic in the token length.
func SchemeLen(s []byte) int {
	if len(s) == 0 || !IsAlpha(s[0]) {
		return 0
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	n := 1
	for ; n < len(s); n++ {
		ns.Clear()
		if err := schemeChar(s, uint(n), ns); err != nil {
			break
		}
	}
	return n
}
