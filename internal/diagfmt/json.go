package diagfmt

import (
	"encoding/json"
	"io"

	"pine/internal/diag"
	"pine/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(files source.Files, sp source.Span, opts JSONOpts) (LocationJSON, error) {
	loc, _, err := locate(files, sp, opts.PathMode, opts.BaseDir)
	if err != nil {
		return LocationJSON{}, err
	}
	return LocationJSON{
		File:      loc.Path,
		StartByte: sp.Start,
		EndByte:   sp.End,
		Line:      loc.Line,
		Col:       loc.Col,
	}, nil
}

// BuildDiagnosticsOutput converts diags into the JSON document. Count is
// the full number even when Max truncates the list.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, files source.Files, opts JSONOpts) (DiagnosticsOutput, error) {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(diags)), Count: len(diags)}
	for i, d := range diags {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		loc, err := makeLocation(files, d.Primary, opts)
		if err != nil {
			return DiagnosticsOutput{}, err
		}
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: loc,
		}
		for _, n := range d.Notes {
			nloc, err := makeLocation(files, n.Span, opts)
			if err != nil {
				return DiagnosticsOutput{}, err
			}
			dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: nloc})
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out, nil
}

// JSON выводит диагностики в JSON.
func JSON(w io.Writer, diags []diag.Diagnostic, files source.Files, opts JSONOpts) error {
	out, err := BuildDiagnosticsOutput(diags, files, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
