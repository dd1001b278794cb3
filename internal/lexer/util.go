package lexer

// ===== Классификаторы =====

var wordTable = func() (t [256]bool) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for _, c := range []byte("_.$/\\~=+[]*?-:") {
		t[c] = true
	}
	return t
}()

// isWordByte: буквы, цифры и _ . $ / \ ~ = + [ ] * ? - :
func isWordByte(b byte) bool { return wordTable[b] }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
