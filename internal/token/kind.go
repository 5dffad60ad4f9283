package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// NewLine ends a logical line.
	NewLine
	// Indent opens one indentation level (4 columns).
	Indent
	// Dedent closes one indentation level.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit is an unsigned integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	// StringLit is a double-quoted string literal.
	StringLit

	KwAnd    // and
	KwOr     // or
	KwType   // type
	KwElse   // else
	KwFalse  // false
	KwTrue   // true
	KwFun    // fun
	KwIf     // if
	KwReturn // return
	KwSelf   // self
	KwLet    // let
	KwLoop   // loop
	KwBreak  // break
	KwNil    // nil

	KwBool // bool
	KwI8   // i8
	KwI32  // i32
	KwI64  // i64
	KwU8   // u8
	KwU32  // u32
	KwU64  // u64
	KwF32  // f32
	KwF64  // f64
	KwStr  // str

	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Comma      // ,
	Dot        // .
	Minus      // -
	Plus       // +
	Slash      // /
	Percent    // %
	Star       // *
	Colon      // :
	Arrow      // ->
	Pipe       // |
	Bang       // !
	BangEq     // !=
	Assign     // =
	EqEq       // ==
	Gt         // >
	GtEq       // >=
	Lt         // <
	LtEq       // <=
	Underscore // _
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	NewLine:    "new line",
	Indent:     "indent",
	Dedent:     "dedent",
	Ident:      "identifier",
	IntLit:     "integer",
	FloatLit:   "float",
	StringLit:  "string",
	KwAnd:      "and",
	KwOr:       "or",
	KwType:     "type",
	KwElse:     "else",
	KwFalse:    "false",
	KwTrue:     "true",
	KwFun:      "fun",
	KwIf:       "if",
	KwReturn:   "return",
	KwSelf:     "self",
	KwLet:      "let",
	KwLoop:     "loop",
	KwBreak:    "break",
	KwNil:      "nil",
	KwBool:     "bool",
	KwI8:       "i8",
	KwI32:      "i32",
	KwI64:      "i64",
	KwU8:       "u8",
	KwU32:      "u32",
	KwU64:      "u64",
	KwF32:      "f32",
	KwF64:      "f64",
	KwStr:      "str",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Dot:        ".",
	Minus:      "-",
	Plus:       "+",
	Slash:      "/",
	Percent:    "%",
	Star:       "*",
	Colon:      ":",
	Arrow:      "->",
	Pipe:       "|",
	Bang:       "!",
	BangEq:     "!=",
	Assign:     "=",
	EqEq:       "==",
	Gt:         ">",
	GtEq:       ">=",
	Lt:         "<",
	LtEq:       "<=",
	Underscore: "_",
}

// String returns the source spelling for fixed tokens and a descriptive name
// for the rest.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsTypeKeyword reports whether k names a primitive type.
func (k Kind) IsTypeKeyword() bool {
	return k >= KwBool && k <= KwStr
}
