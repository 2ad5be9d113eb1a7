package html

import (
	"strings"
	"testing"
)

// bodyOf returns the synthesized or explicit <body> under root.
func bodyOf(t *testing.T, root *Node) *Node {
	t.Helper()
	for _, child := range root.Children {
		if child.Type == ElementNode && child.TagName == "body" {
			return child
		}
	}
	t.Fatalf("no body in tree:\n%s", root.Dump())
	return nil
}

func TestParser_Empty(t *testing.T) {
	root := Parse("")
	if root.TagName != "html" {
		t.Fatalf("expected html root, got '%s'", root.TagName)
	}
	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
	if root.Parent != nil {
		t.Error("root should be detached")
	}
}

func TestParser_SingleElement(t *testing.T) {
	body := bodyOf(t, Parse("<div></div>"))
	if len(body.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(body.Children))
	}
	if body.Children[0].TagName != "div" {
		t.Errorf("expected tag 'div', got '%s'", body.Children[0].TagName)
	}
}

func TestParser_MultipleElements(t *testing.T) {
	body := bodyOf(t, Parse("<div></div><p></p>"))
	if len(body.Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(body.Children))
	}
}

func TestParser_WithAttributes(t *testing.T) {
	body := bodyOf(t, Parse(`<div ID="main" class='x' hidden data-n=3></div>`))
	div := body.Children[0]
	tests := map[string]string{"id": "main", "class": "x", "hidden": "", "data-n": "3"}
	for key, want := range tests {
		got, ok := div.GetAttribute(key)
		if !ok || got != want {
			t.Errorf("attribute %s: expected %q, got %q (present=%v)", key, want, got, ok)
		}
	}
	if v, _ := div.GetAttribute("Id"); v != "main" {
		t.Error("attribute lookup should be case-insensitive")
	}
}

func TestParser_ShortQuotedValueKept(t *testing.T) {
	body := bodyOf(t, Parse(`<p title=""></p>`))
	if v, _ := body.Children[0].GetAttribute("title"); v != `""` {
		t.Errorf("two-character quoted value is kept verbatim, got %q", v)
	}
}

func TestParser_UnterminatedQuoteAccepted(t *testing.T) {
	body := bodyOf(t, Parse(`<p title="abc>x</p>`))
	if v, _ := body.Children[0].GetAttribute("title"); v != `"abc` {
		t.Errorf("expected verbatim value, got %q", v)
	}
}

func TestParser_NestedElements(t *testing.T) {
	body := bodyOf(t, Parse(`<div><p>Hello</p></div>`))

	if len(body.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(body.Children))
	}
	div := body.Children[0]
	if div.TagName != "div" {
		t.Errorf("expected 'div', got '%s'", div.TagName)
	}
	if len(div.Children) != 1 {
		t.Fatalf("expected div to have 1 child, got %d", len(div.Children))
	}
	p := div.Children[0]
	if p.TagName != "p" {
		t.Errorf("expected 'p', got '%s'", p.TagName)
	}
	if len(p.Children) != 1 {
		t.Fatalf("expected p to have 1 text child, got %d", len(p.Children))
	}
	if p.Children[0].Type != TextNode || p.Children[0].Text != "Hello" {
		t.Error("expected text node with 'Hello'")
	}
}

func TestParser_SiblingOrder(t *testing.T) {
	body := bodyOf(t, Parse(`<div>one<p>First</p>two<p>Second</p>three</div>`))
	div := body.Children[0]
	var got []string
	for _, child := range div.Children {
		if child.Type == TextNode {
			got = append(got, child.Text)
		} else {
			got = append(got, "<"+child.TagName+">")
		}
	}
	want := "one <p> two <p> three"
	if strings.Join(got, " ") != want {
		t.Errorf("expected children %q, got %q", want, strings.Join(got, " "))
	}
}

func TestParser_ParentReferences(t *testing.T) {
	root := Parse(`<div><p>Text</p></div>`)
	body := bodyOf(t, root)
	div := body.Children[0]
	p := div.Children[0]

	if p.Parent != div {
		t.Error("p's parent should be div")
	}
	if p.Children[0].Parent != p {
		t.Error("text's parent should be p")
	}
	if div.Parent != body {
		t.Error("div's parent should be body")
	}
	if body.Parent != root {
		t.Error("body's parent should be root")
	}
}

func TestParser_ImplicitHtmlBody(t *testing.T) {
	root := Parse("hello")
	if root.TagName != "html" || len(root.Children) != 1 {
		t.Fatalf("expected html with one child, got:\n%s", root.Dump())
	}
	body := root.Children[0]
	if body.TagName != "body" {
		t.Fatalf("expected body, got %s", body.TagName)
	}
	if body.Children[0].Text != "hello" {
		t.Errorf("expected 'hello', got %q", body.Children[0].Text)
	}
}

func TestParser_ImplicitHead(t *testing.T) {
	root := Parse(`<title>T</title><meta charset=utf-8><p>x</p>`)
	want := `<html>
  <head>
    <title>
      "T"
    <meta charset="utf-8">
  <body>
    <p>
      "x"
`
	if got := root.Dump(); got != want {
		t.Errorf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParser_ExplicitStructure(t *testing.T) {
	root := Parse(`<!doctype html><html><head><title>T</title></head><body><p>x</p></body></html>`)
	if len(root.Children) != 2 {
		t.Fatalf("expected head and body, got:\n%s", root.Dump())
	}
	if root.Children[0].TagName != "head" || root.Children[1].TagName != "body" {
		t.Errorf("unexpected tree:\n%s", root.Dump())
	}
}

func TestParser_SelfClosing(t *testing.T) {
	root := Parse(`<p>a<br>b<img src="x.png"><br/>c</p>`)
	p := bodyOf(t, root).Children[0]
	if len(p.Children) != 6 {
		t.Fatalf("expected 6 children, got:\n%s", root.Dump())
	}
	for _, i := range []int{1, 3, 4} {
		child := p.Children[i]
		if child.Type != ElementNode || len(child.Children) != 0 {
			t.Errorf("child %d should be a childless element, got %+v", i, child)
		}
		if child.Parent != p {
			t.Errorf("child %d should be parented under p", i)
		}
	}
	if src, _ := p.Children[3].GetAttribute("src"); src != "x.png" {
		t.Errorf("expected src x.png, got %q", src)
	}
}

func TestParser_SelfClosingNeverOnStack(t *testing.T) {
	p := NewParser("")
	for _, raw := range []string{"body", "p", "br", "img src=x", "hr", "wbr"} {
		p.addTag(raw)
		if top := p.current().TagName; top != "p" && raw != "body" {
			t.Errorf("after <%s> expected p on top of stack, got %s", raw, top)
		}
	}
	if len(p.unfinished) != 3 {
		t.Errorf("expected html, body, p on the stack, got %d entries", len(p.unfinished))
	}
}

func TestParser_StrayCloserKeepsRoot(t *testing.T) {
	root := Parse(`</html></html><p>x</p></html>`)
	if root.TagName != "html" || root.Parent != nil {
		t.Fatalf("expected detached html root, got:\n%s", root.Dump())
	}
	if root.TextContent() != "x" {
		t.Errorf("expected text to survive, got %q", root.TextContent())
	}
}

func TestParser_UnclosedElementsAttached(t *testing.T) {
	root := Parse(`<div><p><b>bold`)
	want := `<html>
  <body>
    <div>
      <p>
        <b>
          "bold"
`
	if got := root.Dump(); got != want {
		t.Errorf("unexpected tree:\n%s", got)
	}
}

func TestParser_CommentsAndDoctypeDiscarded(t *testing.T) {
	root := Parse(`<!DOCTYPE html><!-- <p>hidden</p> --><p>shown</p>`)
	body := bodyOf(t, root)
	if len(body.Children) != 1 || body.TextContent() != "shown" {
		t.Errorf("unexpected tree:\n%s", root.Dump())
	}
	if len(root.Children) != 1 {
		t.Error("doctype must not create a head")
	}
}

func TestParser_EntitiesDoNotOpenTags(t *testing.T) {
	body := bodyOf(t, Parse("a &amp; b &lt;tag&gt;"))
	if len(body.Children) != 1 {
		t.Fatalf("expected one text node, got %d children", len(body.Children))
	}
	if body.Children[0].Text != "a & b <tag>" {
		t.Errorf("expected 'a & b <tag>', got %q", body.Children[0].Text)
	}
}

func TestParser_EmptyTagIgnored(t *testing.T) {
	body := bodyOf(t, Parse("a<>b</>c"))
	if body.TextContent() != "abc" {
		t.Errorf("expected 'abc', got %q", body.TextContent())
	}
}

func TestParser_UppercaseTags(t *testing.T) {
	body := bodyOf(t, Parse("<DIV><B>x</B></DIV>"))
	div := body.Children[0]
	if div.TagName != "div" || div.Children[0].TagName != "b" {
		t.Errorf("tags should be lower-cased, got %s", body.Dump())
	}
}
