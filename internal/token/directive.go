package token

// Directive is the closed set of top-level linker script commands.
type Directive uint8

const (
	// NoDirective is returned for words that are not top-level commands.
	NoDirective Directive = iota
	DirEntry               // ENTRY
	DirExtern              // EXTERN
	DirGroup               // GROUP
	DirInput               // INPUT
	DirInclude             // INCLUDE
	DirOutput              // OUTPUT
	DirOutputArch          // OUTPUT_ARCH
	DirOutputFormat        // OUTPUT_FORMAT
	DirSearchDir           // SEARCH_DIR
	DirSections            // SECTIONS
)

// AsNeeded is the only keyword that is valid inside GROUP/INPUT and nowhere else.
const AsNeeded = "AS_NEEDED"

var directives = map[string]Directive{
	"ENTRY":         DirEntry,
	"EXTERN":        DirExtern,
	"GROUP":         DirGroup,
	"INPUT":         DirInput,
	"INCLUDE":       DirInclude,
	"OUTPUT":        DirOutput,
	"OUTPUT_ARCH":   DirOutputArch,
	"OUTPUT_FORMAT": DirOutputFormat,
	"SEARCH_DIR":    DirSearchDir,
	"SECTIONS":      DirSections,
}

// LookupDirective возвращает директиву и true, если слово является командой верхнего уровня.
// Регистр важен: "entry" не директива.
func LookupDirective(word string) (Directive, bool) {
	d, ok := directives[word]
	return d, ok
}

func (d Directive) String() string {
	for name, dir := range directives {
		if dir == d {
			return name
		}
	}
	return "<none>"
}
