package token

var keywords = map[string]Kind{
	"and":    KwAnd,
	"or":     KwOr,
	"type":   KwType,
	"else":   KwElse,
	"false":  KwFalse,
	"true":   KwTrue,
	"fun":    KwFun,
	"if":     KwIf,
	"return": KwReturn,
	"self":   KwSelf,
	"let":    KwLet,
	"loop":   KwLoop,
	"break":  KwBreak,
	"nil":    KwNil,
	"bool":   KwBool,
	"i8":     KwI8,
	"i32":    KwI32,
	"i64":    KwI64,
	"u8":     KwU8,
	"u32":    KwU32,
	"u64":    KwU64,
	"f32":    KwF32,
	"f64":    KwF64,
	"str":    KwStr,
}

// LookupKeyword returns the keyword kind for an exact lexeme.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
