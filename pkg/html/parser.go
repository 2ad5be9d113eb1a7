package html

import "strings"

// selfClosingTags never open: they attach to the current element and are
// not pushed onto the construction stack.
var selfClosingTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// headTags may appear before any body content and imply a <head>.
var headTags = map[string]bool{
	"base": true, "basefont": true, "bgsound": true, "noscript": true,
	"link": true, "meta": true, "title": true, "style": true,
	"script": true,
}

// Parser builds an element tree from markup. Elements are appended to
// their parent when they close, so the construction stack holds exactly
// the elements that still accept children.
type Parser struct {
	tokenizer  *Tokenizer
	unfinished []*Node
}

func NewParser(html string) *Parser {
	return &Parser{tokenizer: NewTokenizer(html)}
}

// Parse consumes the whole input and returns the detached root. Malformed
// markup never produces an error; recovery rules are applied instead.
func (p *Parser) Parse() *Node {
	for {
		token := p.tokenizer.NextToken()
		switch token.Type {
		case TokenText:
			p.addText(token.Text)
		case TokenTag:
			p.addTag(token.Raw)
		case TokenEOF:
			return p.finish()
		}
	}
}

func Parse(html string) *Node {
	return NewParser(html).Parse()
}

func (p *Parser) addText(text string) {
	p.implicitTags("")
	parent := p.current()
	parent.Children = append(parent.Children, NewText(text, parent))
}

func (p *Parser) addTag(raw string) {
	tag, attributes, void := parseTag(raw)
	if tag == "" || strings.HasPrefix(tag, "!") {
		return
	}
	p.implicitTags(tag)
	p.processTag(tag, attributes, void)
}

// processTag applies a tag to the construction stack without running
// implicit-tag insertion.
func (p *Parser) processTag(tag string, attributes map[string]string, void bool) {
	switch {
	case strings.HasPrefix(tag, "/"):
		// The root only closes in finish.
		if len(p.unfinished) <= 1 {
			return
		}
		node := p.pop()
		p.current().AddChild(node)
	case (void || selfClosingTags[tag]) && len(p.unfinished) > 0:
		parent := p.current()
		parent.AddChild(NewElement(tag, attributes, parent))
	default:
		var parent *Node
		if len(p.unfinished) > 0 {
			parent = p.current()
		}
		p.unfinished = append(p.unfinished, NewElement(tag, attributes, parent))
	}
}

// implicitTags inserts the html, head and body structure the source left
// out before tag (or before text, when tag is empty) is processed. Each
// pass changes the stack, so the loop runs at most a handful of times.
func (p *Parser) implicitTags(tag string) {
	for {
		switch {
		case len(p.unfinished) == 0 && tag != "html":
			p.processTag("html", nil, false)
		case p.openTagsAre("html") && tag != "head" && tag != "body" && tag != "/html":
			if headTags[tag] {
				p.processTag("head", nil, false)
			} else {
				p.processTag("body", nil, false)
			}
		case p.openTagsAre("html", "head") && tag != "/head" && !headTags[tag]:
			p.processTag("/head", nil, false)
		default:
			return
		}
	}
}

func (p *Parser) finish() *Node {
	if len(p.unfinished) == 0 {
		p.processTag("html", nil, false)
	}
	for len(p.unfinished) > 1 {
		node := p.pop()
		p.current().AddChild(node)
	}
	root := p.pop()
	root.Parent = nil
	return root
}

func (p *Parser) current() *Node {
	return p.unfinished[len(p.unfinished)-1]
}

func (p *Parser) pop() *Node {
	node := p.unfinished[len(p.unfinished)-1]
	p.unfinished = p.unfinished[:len(p.unfinished)-1]
	return node
}

func (p *Parser) openTagsAre(tags ...string) bool {
	if len(p.unfinished) != len(tags) {
		return false
	}
	for i, node := range p.unfinished {
		if node.TagName != tags[i] {
			return false
		}
	}
	return true
}

// parseTag splits a raw tag into its lower-cased name and attributes.
// Attribute tokens are separated by whitespace, so quoted values that
// contain spaces are split too. A trailing '/' marks the element void.
func parseTag(raw string) (tag string, attributes map[string]string, void bool) {
	fields := strings.Fields(raw)
	if n := len(fields); n > 0 && len(raw) > 1 && strings.HasSuffix(fields[n-1], "/") {
		fields[n-1] = strings.TrimSuffix(fields[n-1], "/")
		if fields[n-1] == "" {
			fields = fields[:n-1]
		}
		void = true
	}
	if len(fields) == 0 {
		return "", nil, false
	}

	tag = strings.ToLower(fields[0])
	if tag == "/" {
		return "", nil, false
	}
	if strings.HasPrefix(tag, "/") {
		void = false
	}
	attributes = make(map[string]string)
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			attributes[strings.ToLower(field)] = ""
			continue
		}
		if len(value) > 2 && (value[0] == '\'' || value[0] == '"') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		attributes[strings.ToLower(key)] = value
	}
	return tag, attributes, void
}
