package token

// Kind represents the lexical category of a script token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The interpreter hands it out
	// once the stream is exhausted or an error has been recorded.
	Invalid Kind = iota
	// Word is a maximal run of word characters: ENTRY, crt1.o, -lc, *(.text).
	Word
	// String is a double-quoted token.
	String
	// Punct is a single character outside the word charset: ( ) { } ; , etc.
	Punct
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Word:
		return "Word"
	case String:
		return "String"
	case Punct:
		return "Punct"
	default:
		return "Unknown"
	}
}
