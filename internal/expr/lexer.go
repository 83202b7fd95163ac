package expr

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	TokPlus TokenType = iota
	TokMinus
	TokStar
	TokSlash
	TokLParen
	TokRParen
	TokNumber
)

// Token is a lexeme produced by the Lexer. Pos is the byte offset of the
// token's first rune in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer scans calculator input into tokens. It only understands the keypad
// alphabet: digits, a decimal point, the four operators and parentheses.
type Lexer struct {
	input      string
	tokens     chan Token
	errors     chan error
	action     lexFn
	start, pos int
	width      int
}

type lexFn func(l *Lexer) lexFn

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		errors: make(chan error, 2),
		tokens: make(chan Token, 2),
		action: lexSkipSpace,
	}
}

// Next returns the next token, io.EOF once the input is exhausted, or a
// *SyntaxError for input outside the keypad alphabet.
func (l *Lexer) Next() (Token, error) {
	for {
		select {
		case err := <-l.errors:
			if err != io.EOF {
				return Token{}, err
			}
		case t := <-l.tokens:
			return t, nil
		default:
			if l.action == nil {
				return Token{}, io.EOF
			}
			l.action = l.action(l)
		}
	}
}

// Tokens drains the lexer into a slice.
func (l *Lexer) Tokens() ([]Token, error) {
	var out []Token
	for {
		t, err := l.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
}

const eof rune = 0

const digits = "0123456789"

func lexSkipSpace(l *Lexer) lexFn {
	var ru rune
	for {
		ru = l.next()
		if !unicode.IsSpace(ru) {
			break
		}
	}
	l.backup()
	l.ignore()

	if ru == eof {
		return nil
	}

	if l.accept(digits + ".") {
		return lexNumber
	}

	ru = l.next()
	if t, ok := runeTokens[ru]; ok {
		l.emit(t)
		return lexSkipSpace
	}

	return l.errorf(l.start, "unexpected character %q", ru)
}

func lexNumber(l *Lexer) lexFn {
	l.backup()
	l.acceptRun(digits)
	if l.accept(".") {
		l.acceptRun(digits)
	}
	if !strings.ContainsAny(l.current(), digits) {
		return l.errorf(l.start, "bare decimal point")
	}
	if l.accept(digits + ".") {
		l.acceptRun(digits + ".")
		return l.errorf(l.start, "bad number syntax %q", l.current())
	}
	l.emit(TokNumber)
	return lexSkipSpace
}

var runeTokens = map[rune]TokenType{
	'+': TokPlus,
	'-': TokMinus,
	'*': TokStar,
	'/': TokSlash,
	'(': TokLParen,
	')': TokRParen,
}

func (l *Lexer) current() string {
	return l.input[l.start:l.pos]
}

func (l *Lexer) emit(t TokenType) {
	l.tokens <- Token{Type: t, Value: l.current(), Pos: l.start}
	l.ignore()
}

func (l *Lexer) errorf(pos int, format string, args ...any) lexFn {
	if len(l.errors) == 0 {
		l.errors <- syntaxErrorf(pos, format, args...)
	}
	return nil
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	var ru rune
	ru, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return ru
}

func (l *Lexer) backup() {
	l.pos -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) accept(valid string) bool {
	if strings.IndexRune(valid, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid string) {
	for strings.IndexRune(valid, l.next()) >= 0 {
	}
	l.backup()
}
