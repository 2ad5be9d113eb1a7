package html

import "strings"

type TokenType int

const (
	TokenText TokenType = iota
	TokenTag
	TokenEOF
)

type Token struct {
	Type TokenType
	Text string // decoded text for TokenText
	Raw  string // everything between '<' and '>' for TokenTag
}

type tokenizerState int

const (
	stateText tokenizerState = iota
	stateTag
	stateEntity
	stateComment
)

// Tokenizer splits markup into text runs and raw tag strings, one byte at
// a time. Delimiters are all ASCII, so multi-byte UTF-8 sequences pass
// through the buffers untouched.
type Tokenizer struct {
	input  string
	pos    int
	state  tokenizerState
	text   strings.Builder
	tag    strings.Builder
	entity strings.Builder
	dashes int // consecutive '-' seen inside a comment
}

func NewTokenizer(html string) *Tokenizer {
	return &Tokenizer{input: html}
}

// NextToken returns the next text run or tag. Text that is entirely
// whitespace is dropped. At end of input any pending text is returned
// once; an unterminated tag, comment or entity is discarded.
func (t *Tokenizer) NextToken() Token {
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		t.pos++

		switch t.state {
		case stateText:
			switch c {
			case '<':
				t.state = stateTag
				if tok, ok := t.flushText(); ok {
					return tok
				}
			case '&':
				t.state = stateEntity
			default:
				t.text.WriteByte(c)
			}

		case stateEntity:
			switch {
			case c == ';':
				if s, ok := DecodeEntity(t.entity.String()); ok {
					t.text.WriteString(s)
				}
				t.entity.Reset()
				t.state = stateText
			case c == '<' || isSpace(c):
				// Abandoned entity: drop the name and let the text state
				// see this byte.
				t.entity.Reset()
				t.state = stateText
				t.pos--
			default:
				t.entity.WriteByte(c)
			}

		case stateTag:
			if c == '>' {
				raw := t.tag.String()
				t.tag.Reset()
				t.state = stateText
				return Token{Type: TokenTag, Raw: raw}
			}
			t.tag.WriteByte(c)
			if t.tag.Len() == 3 && t.tag.String() == "!--" {
				t.tag.Reset()
				t.dashes = 0
				t.state = stateComment
			}

		case stateComment:
			switch {
			case c == '-':
				t.dashes++
			case c == '>' && t.dashes >= 2:
				t.state = stateText
			default:
				t.dashes = 0
			}
		}
	}

	switch t.state {
	case stateText, stateEntity:
		t.entity.Reset()
		t.state = stateText
		if tok, ok := t.flushText(); ok {
			return tok
		}
	default:
		t.tag.Reset()
		t.state = stateText
	}
	return Token{Type: TokenEOF}
}

func (t *Tokenizer) flushText() (Token, bool) {
	text := t.text.String()
	t.text.Reset()
	if isBlank(text) {
		return Token{}, false
	}
	return Token{Type: TokenText, Text: text}, true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// isBlank reports whether s is empty or only ASCII whitespace. U+00A0
// from &nbsp; counts as content.
func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}
