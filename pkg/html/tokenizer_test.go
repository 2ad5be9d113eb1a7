package html

import "testing"

func collectTokens(input string) []Token {
	tokenizer := NewTokenizer(input)
	var tokens []Token
	for {
		token := tokenizer.NextToken()
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			return tokens
		}
	}
}

func TestTokenizer_SimpleStartTag(t *testing.T) {
	token := NewTokenizer("<div>").NextToken()
	if token.Type != TokenTag {
		t.Errorf("expected TokenTag, got %v", token.Type)
	}
	if token.Raw != "div" {
		t.Errorf("expected raw tag 'div', got '%s'", token.Raw)
	}
}

func TestTokenizer_TagWithAttributes(t *testing.T) {
	token := NewTokenizer(`<div class="a" id=main>`).NextToken()
	if token.Raw != `div class="a" id=main` {
		t.Errorf("expected raw attribute text to be kept, got '%s'", token.Raw)
	}
}

func TestTokenizer_CompleteSequence(t *testing.T) {
	tokens := collectTokens("<div>Hello</div>")
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}
	if tokens[0].Type != TokenTag || tokens[0].Raw != "div" {
		t.Error("expected tag 'div'")
	}
	if tokens[1].Type != TokenText || tokens[1].Text != "Hello" {
		t.Error("expected text 'Hello'")
	}
	if tokens[2].Type != TokenTag || tokens[2].Raw != "/div" {
		t.Error("expected tag '/div'")
	}
	if tokens[3].Type != TokenEOF {
		t.Error("expected EOF")
	}
}

func TestTokenizer_Entities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"known entities", "a &amp; b &lt;tag&gt;", "a & b <tag>"},
		{"unknown entity dropped", "x&bogus;y", "xy"},
		{"nbsp is not whitespace", "&nbsp;", "\u00a0"},
		{"abandoned by space", "AT&T rocks", "AT rocks"},
		{"unterminated at end", "tail &amp", "tail "},
		{"quotes", "&quot;hi&apos;", `"hi'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collectTokens(tt.input)
			if len(tokens) != 2 || tokens[0].Type != TokenText {
				t.Fatalf("expected one text token, got %+v", tokens)
			}
			if tokens[0].Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tokens[0].Text)
			}
		})
	}
}

func TestTokenizer_EntityAbandonedByTag(t *testing.T) {
	tokens := collectTokens("a&lt<b>")
	if tokens[0].Type != TokenText || tokens[0].Text != "a" {
		t.Errorf("expected text 'a', got %+v", tokens[0])
	}
	if tokens[1].Type != TokenTag || tokens[1].Raw != "b" {
		t.Errorf("expected tag 'b', got %+v", tokens[1])
	}
}

func TestTokenizer_WhitespaceTextDropped(t *testing.T) {
	tokens := collectTokens("<p>  \n\t</p>")
	for _, token := range tokens {
		if token.Type == TokenText {
			t.Errorf("whitespace-only text should be dropped, got %q", token.Text)
		}
	}
}

func TestTokenizer_Comments(t *testing.T) {
	tokens := collectTokens("a<!-- x > y -- z -->b<!---->c")
	var texts []string
	for _, token := range tokens {
		switch token.Type {
		case TokenText:
			texts = append(texts, token.Text)
		case TokenTag:
			t.Errorf("comment leaked a tag token %q", token.Raw)
		}
	}
	if len(texts) != 3 || texts[0] != "a" || texts[1] != "b" || texts[2] != "c" {
		t.Errorf("expected texts [a b c], got %v", texts)
	}
}

func TestTokenizer_UnterminatedTagDropped(t *testing.T) {
	tokens := collectTokens("hello <div class=")
	if len(tokens) != 2 {
		t.Fatalf("expected text then EOF, got %+v", tokens)
	}
	if tokens[0].Text != "hello " {
		t.Errorf("expected 'hello ', got %q", tokens[0].Text)
	}
}

func TestTokenizer_AmpersandInsideTagIsLiteral(t *testing.T) {
	token := NewTokenizer(`<a href="?a=1&amp;b=2">`).NextToken()
	if token.Raw != `a href="?a=1&amp;b=2"` {
		t.Errorf("unexpected raw tag %q", token.Raw)
	}
}

func TestTokenizer_Multibyte(t *testing.T) {
	tokens := collectTokens("<p>héllo wörld €</p>")
	if tokens[1].Text != "héllo wörld €" {
		t.Errorf("multibyte text mangled: %q", tokens[1].Text)
	}
}
