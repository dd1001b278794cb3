package source

// Interner is the string arena of a link session. Every string saved here
// stays alive for as long as the session holds the Interner, so later link
// phases may keep the returned strings without caring where the text came from.
type Interner struct {
	strings map[string]string // строка -> собственная копия
}

func NewInterner() *Interner {
	return &Interner{strings: make(map[string]string)}
}

// Save copies s into the arena and returns the arena-owned copy.
// Equal strings share one copy.
func (i *Interner) Save(s string) string {
	if saved, ok := i.strings[s]; ok {
		return saved
	}
	// Собственная копия, чтобы не зависеть от исходного буфера.
	cpy := string([]byte(s))
	i.strings[cpy] = cpy
	return cpy
}

// Len возвращает количество строк в арене.
func (i *Interner) Len() int {
	return len(i.strings)
}
