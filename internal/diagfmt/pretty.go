package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pine/internal/diag"
	"pine/internal/source"
)

type palette struct {
	err, warn, info, note, caret, loc *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		note:  color.New(color.FgBlue, color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		loc:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.caret, p.loc} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: error[SYN::0002]: <message>
//	    <source line>
//	    ^~~~
//
// затем notes в том же формате. Ожидается, что diags уже отсортированы.
func Pretty(w io.Writer, diags []diag.Diagnostic, files source.Files, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range diags {
		loc, line, err := locate(files, d.Primary, opts.PathMode, opts.BaseDir)
		if err != nil {
			return err
		}
		sev := p.severity(d.Severity)
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n",
			p.loc.Sprint(loc.String()),
			sev.Sprintf("%s[%s]", d.Severity, d.Code.ID()),
			d.Message,
		); err != nil {
			return err
		}
		if err := writeSnippet(w, p, line, d.Primary); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nloc, _, err := locate(files, n.Span, opts.PathMode, opts.BaseDir)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), nloc, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Location is a printable file position.
type Location struct {
	Path string
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Col)
}

// sourceLine is the text of the primary line and its byte span.
type sourceLine struct {
	text  string
	start uint32
	end   uint32
}

func locate(files source.Files, sp source.Span, mode PathMode, baseDir string) (Location, sourceLine, error) {
	name, err := files.Name(sp.File)
	if err != nil {
		return Location{}, sourceLine{}, err
	}
	idx, err := files.LineIndex(sp.File, sp.Start)
	if err != nil {
		return Location{}, sourceLine{}, err
	}
	lr, err := files.LineRange(sp.File, idx)
	if err != nil {
		return Location{}, sourceLine{}, err
	}
	content, err := files.Source(sp.File)
	if err != nil {
		return Location{}, sourceLine{}, err
	}
	loc := Location{
		Path: formatPath(name, mode, baseDir),
		Line: idx + 1,
		Col:  sp.Start - lr.Start + 1,
	}
	return loc, sourceLine{text: string(content[lr.Start:lr.End]), start: lr.Start, end: lr.End}, nil
}

// writeSnippet prints the line and a caret under the span. Columns are
// measured in terminal cells so wide runes stay aligned.
func writeSnippet(w io.Writer, p palette, line sourceLine, sp source.Span) error {
	if strings.TrimSpace(line.text) == "" && sp.Empty() {
		return nil
	}
	startOff := int(sp.Start - line.start)
	endOff := int(min(sp.End, line.end) - line.start)
	startOff = min(startOff, len(line.text))
	endOff = max(endOff, startOff)

	var pad strings.Builder
	for _, r := range line.text[:startOff] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line.text[startOff:endOff]), 1)
	marker := "^" + strings.Repeat("~", width-1)

	_, err := fmt.Fprintf(w, "    %s\n    %s%s\n", line.text, pad.String(), p.caret.Sprint(marker))
	return err
}
