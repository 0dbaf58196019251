package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kmorelli/activityloom/loom/activity"
	"github.com/kmorelli/activityloom/loom/telemetry"
)

// ParseAnnotated strips inline tag markup from annotated HTML and
// recovers the plain text plus the url, display name, and codepoint
// range of each anchor. It is the inverse of Render for inline tags.
func ParseAnnotated(markup string) (string, []*activity.Tag) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		// html.Parse recovers from almost anything, so this is rare
		telemetry.Error(err, "parsing annotated html")
		return markup, nil
	}

	p := annotatedParser{}
	p.walk(findBody(doc))
	return p.text.String(), p.tags
}

type annotatedParser struct {
	text     strings.Builder
	offset   int // codepoints written so far
	afterBR  bool
	tags     []*activity.Tag
}

func (p *annotatedParser) emit(s string) {
	if p.afterBR {
		// the renderer writes "<br />\n"; the newline after the break
		// is formatting, not content
		s = strings.TrimPrefix(s, "\n")
		p.afterBR = false
	}
	if s == "" {
		return
	}
	p.text.WriteString(s)
	p.offset += len([]rune(s))
}

func (p *annotatedParser) walk(n *html.Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		p.emit(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			p.text.WriteString("\n")
			p.offset++
			p.afterBR = true
			return
		case atom.Img, atom.Script, atom.Style:
			return
		case atom.A:
			p.parseAnchor(n)
			return
		case atom.P, atom.Div, atom.Li, atom.Blockquote:
			p.breakLine()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

// breakLine separates block elements with a newline in the plain form.
func (p *annotatedParser) breakLine() {
	if p.offset > 0 && !strings.HasSuffix(p.text.String(), "\n") {
		p.text.WriteString("\n")
		p.offset++
	}
}

func (p *annotatedParser) parseAnchor(n *html.Node) {
	start := p.offset
	mark := p.text.Len()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
	length := p.offset - start
	inner := p.text.String()[mark:]

	tag := &activity.Tag{
		URL:         attr(n, "href"),
		DisplayName: inner,
		StartIndex:  &start,
		Length:      &length,
	}
	if attr(n, "class") == "mention" {
		tag.ObjectType = activity.PersonType
	}
	p.tags = append(p.tags, tag)
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
