// Package grammar holds the code point classes and small syntax rules of the WHATWG URL grammar.
package grammar

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/weburl/internal/constraints"
)

var (
	alpha = abnf.Alt(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	scheme = abnf.Concat(
		"scheme",
		alpha,
		abnf.Repeat0Inf(
			`*( ALPHA / DIGIT / "+" / "-" / "." )`,
			abnf.Alt(
				`ALPHA / DIGIT / "+" / "-" / "."`,
				alpha,
				digit,
				abnf.Literal(`"+"`, []byte{'+'}),
				abnf.Literal(`"-"`, []byte{'-'}),
				abnf.Literal(`"."`, []byte{'.'}),
			),
		),
	)
)

// IsScheme reports whether s is a syntactically valid URL scheme name.
func IsScheme[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := scheme([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
