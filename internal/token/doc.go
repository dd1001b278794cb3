// Package token defines the token model of linker scripts.
// Invariants:
//   - Token.Text is the derived value: quoted tokens carry the text strictly
//     between the quotes, every other token is the exact source slice.
//   - Token.Span covers the whole lexeme, quotes included.
//   - Keywords are case-sensitive and are not a separate token kind; the
//     interpreter recognises them by Text via LookupDirective.
//   - There is no EOF token; a stream ends where its slice ends.
package token
