package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ldscript/internal/diag"
	"ldscript/internal/source"
)

type palette struct {
	errSev  *color.Color
	warnSev *color.Color
	infoSev *color.Color
	loc     *color.Color
	gutter  *color.Color
	caret   *color.Color
	note    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		errSev:  color.New(color.FgRed, color.Bold),
		warnSev: color.New(color.FgYellow, color.Bold),
		infoSev: color.New(color.FgCyan, color.Bold),
		loc:     color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		note:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.errSev, p.warnSev, p.infoSev, p.loc, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.errSev
	case diag.SevWarning:
		return p.warnSev
	default:
		return p.infoSev
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, _ := fs.Resolve(d.Primary)
		path := formatPath(fs.Get(d.Primary.File), fs, opts.PathMode)

		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.loc.Sprintf("%s:%d:%d", path, start.Line, start.Col),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, int(opts.Context), pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			npath := formatPath(fs.Get(n.Span.File), fs, opts.PathMode)
			fmt.Fprintf(w, "  %s %s: %s\n",
				pal.note.Sprint("note:"),
				pal.loc.Sprintf("%s:%d:%d", npath, ns.Line, ns.Col),
				n.Msg,
			)
		}
	}
}

// writeSnippet печатает строку со span и до context строк перед ней.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)

	first := start.Line
	for k := 0; k < context && first > 1; k++ {
		first--
	}
	width := len(fmt.Sprint(start.Line))

	for n := first; n < start.Line; n++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, n), f.GetLine(n))
	}
	fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, start.Line), line)

	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col-1), len(line))
	}
	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", width, ""),
		padTo(line[:from]),
		pal.caret.Sprint(underline(line[from:to])),
	)
}

// padTo возвращает отступ той же ширины на экране, что и prefix; табы сохраняются.
func padTo(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(text string) string {
	w := runewidth.StringWidth(text)
	if w <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", w-1)
}
