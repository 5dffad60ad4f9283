package lexer

import (
	"io"
	"iter"

	"pine/internal/source"
	"pine/internal/token"
)

// Lexer turns one file into a lazy stream of tokens. The stream ends with
// exactly one EOF token; after it Next returns io.EOF.
type Lexer struct {
	file       *source.File
	cursor     Cursor
	opts       Options
	queue      []token.Token // синтезированные NewLine/Indent/Dedent, FIFO
	prevIndent int           // ширина отступа последней непустой строки
	done       bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the lexed file.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next token or a lexical error. A returned *Error does not
// stop the stream: the offending input is skipped.
func (lx *Lexer) Next() (token.Token, error) {
	// 1) после EOF ничего нет
	if lx.done {
		return token.Token{}, io.EOF
	}

	// 2) буфер синтезированных токенов
	if len(lx.queue) > 0 {
		return lx.pop(), nil
	}

	// 3) пробелы и комментарии внутри строки
	lx.skipTrivia()

	// 4) конец файла: закрываем открытые уровни, затем EOF
	if lx.cursor.EOF() {
		at := lx.emptySpan()
		for range lx.prevIndent / indentWidth {
			lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: at})
		}
		lx.prevIndent = 0
		lx.queue = append(lx.queue, token.Token{Kind: token.EOF, Span: at})
		return lx.pop(), nil
	}

	// 5) выбор сканера по текущему байту
	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		return lx.scanNewLine()
	case ch == '_':
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// All yields every token and error up to and including EOF.
func (lx *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := lx.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

func (lx *Lexer) pop() token.Token {
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	if tok.Kind == token.EOF {
		lx.done = true
		lx.queue = nil
	}
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.At(lx.file.ID, lx.cursor.Off)
}
