package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические: номер внутри стадии = Code - 1000
	LexUnexpectedInput         Code = 1000
	LexUnterminatedString      Code = 1001
	LexIndentNotMultipleOfFour Code = 1002
	LexBadEscape               Code = 1003
	LexIntegerOverflow         Code = 1004
	LexBadNumber               Code = 1005

	// Парсерные
	SynUnexpectedEOF       Code = 2001
	SynUnrecognizedToken   Code = 2002
	SynExpectedType        Code = 2003
	SynInvalidAssignTarget Code = 2004

	// Структурные проверки перед lowering
	SemUnknownStruct        Code = 3001
	SemUnknownField         Code = 3002
	SemMissingField         Code = 3003
	SemDuplicateField       Code = 3004
	SemStructLitPosition    Code = 3005
	SemStructTypeMismatch   Code = 3006
	SemDuplicateDeclaration Code = 3007
	SemMissingMain          Code = 3008
	SemTemporaryShadowing   Code = 3009
	SemMainSignature        Code = 3010
	SemReservedName         Code = 3011
)

var codeDescription = map[Code]string{
	UnknownCode:                "unknown error",
	LexUnexpectedInput:         "unexpected input",
	LexUnterminatedString:      "unterminated string",
	LexIndentNotMultipleOfFour: "indentation is not a multiple of four",
	LexBadEscape:               "unknown escape sequence",
	LexIntegerOverflow:         "integer literal overflows u64",
	LexBadNumber:               "malformed number literal",
	SynUnexpectedEOF:           "unrecognized EOF",
	SynUnrecognizedToken:       "unrecognized token",
	SynExpectedType:            "expected type",
	SynInvalidAssignTarget:     "invalid assignment target",
	SemUnknownStruct:           "unknown struct",
	SemUnknownField:            "unknown struct field",
	SemMissingField:            "missing struct field",
	SemDuplicateField:          "duplicate struct field",
	SemStructLitPosition:       "struct literal outside of let initializer",
	SemStructTypeMismatch:      "struct literal does not match declared type",
	SemDuplicateDeclaration:    "duplicate top-level declaration",
	SemMissingMain:             "missing main function",
	SemTemporaryShadowing:      "struct literal field shadows a name used by the initializer",
	SemMainSignature:           "main must not take parameters",
	SemReservedName:            "name is reserved by C or the runtime",
}

// Stage returns the namespace of the code.
func (c Code) Stage() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "LEX"
	case ic >= 2000 && ic < 3000:
		return "SYN"
	case ic >= 3000 && ic < 4000:
		return "SEM"
	}
	return "E"
}

// ID returns the stable identifier, e.g. "SYN::0002".
func (c Code) ID() string {
	return fmt.Sprintf("%s::%04d", c.Stage(), int(c)%1000)
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
