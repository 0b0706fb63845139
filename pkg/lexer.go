package toy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type TokenType uint64

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenDef
	TokenExtern
	TokenIdentifier
	TokenNumber
	TokenSymbol
)

var keywordTable = map[string]TokenType{
	"def":    TokenDef,
	"extern": TokenExtern,
}

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenDef:
		return "Def"
	case TokenExtern:
		return "Extern"
	case TokenIdentifier:
		return "Identifier"
	case TokenNumber:
		return "Number"
	case TokenSymbol:
		return "Symbol"
	default:
		return fmt.Sprintf("TokenType(%d)", uint64(t))
	}
}

// Token is a single lexical unit. Value holds the identifier or keyword text,
// or the character of a symbol. Num is only meaningful for TokenNumber.
type Token struct {
	Typ   TokenType
	Value string
	Num   float64
}

// Is reports whether the token is the symbol r.
func (t Token) Is(r rune) bool {
	return t.Typ == TokenSymbol && t.Value == string(r)
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	default:
		return fmt.Sprintf("'%s'", t.Value)
	}
}

// Tokenizer is the token source consumed by the Parser.
type Tokenizer interface {
	Get() Token
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	closer   io.Closer

	eof bool
	err error
}

// NewLexer opens filename and tokenizes its contents. The caller must Close
// the lexer once parsing is done.
func NewLexer(filename string) (*Lexer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	l := NewLexerFromReader(f)
	l.filename = filename
	l.closer = f

	return l, nil
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return &Lexer{
		filename: "<stdin>",
		reader:   bufio.NewReader(reader),
	}
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

// Err returns the read error that ended the input early, if any. Reaching the
// end of the input is not an error.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

// Get returns the next token. Once the input is exhausted every call returns
// TokenEOF.
func (l *Lexer) Get() Token {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return Token{Typ: TokenEOF}
		case isSpace(r):
			l.next()
			continue
		case isLetter(r):
			return identifierState(l)
		case isDigit(r) || r == '.':
			return numberState(l)
		case r == '#':
			lineCommentState(l)
			continue
		default:
			l.next()
			return Token{Typ: TokenSymbol, Value: string(r)}
		}
	}
}

func identifierState(l *Lexer) Token {
	var id strings.Builder
	for r := l.peek(); isLetter(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return Token{Typ: t, Value: id.String()}
	}

	return Token{Typ: TokenIdentifier, Value: id.String()}
}

func numberState(l *Lexer) Token {
	var num strings.Builder
	for r := l.peek(); isDigit(r) || r == '.'; r = l.peek() {
		num.WriteRune(l.next())
	}

	return Token{
		Typ:   TokenNumber,
		Value: num.String(),
		Num:   parseNumber(num.String()),
	}
}

func lineCommentState(l *Lexer) {
	l.next() // Skip the '#'

	for r := l.peek(); r != '\n' && r != '\r' && r != EOF; r = l.peek() {
		l.next()
	}
}

// parseNumber converts the longest decimal prefix of s. Text with no valid
// prefix, such as "..", yields 0.
func parseNumber(s string) float64 {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}

	return v
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != EOF {
		_ = l.reader.UnreadRune()
	}

	return r
}

func (l *Lexer) next() rune {
	if l.eof {
		return EOF
	}

	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}

		l.eof = true
		return EOF
	}

	return r
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// IsSymbol reports whether r reaches the parser as a TokenSymbol.
func IsSymbol(r rune) bool {
	return r != EOF && r != '#' && r != '.' && !isSpace(r) && !isLetter(r) && !isDigit(r)
}
