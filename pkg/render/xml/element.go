package xml

import (
	"strings"
)

type attr struct {
	name, value string
}

// element is a minimal DOM node. An element holds either text or child
// elements, never both.
type element struct {
	name     string
	attrs    []attr
	text     string
	hasText  bool
	children []*element
}

func newElement(name string) *element {
	return &element{name: name}
}

func (e *element) add(name string) *element {
	child := newElement(name)
	e.children = append(e.children, child)
	return child
}

func (e *element) attr(name, value string) *element {
	e.attrs = append(e.attrs, attr{name, value})
	return e
}

func (e *element) setText(text string) *element {
	e.text, e.hasText = text, true
	return e
}

// write prints e with two spaces of indentation per level. Text content is
// trimmed and runs of whitespace collapse to one space. Empty elements are
// self-closing.
func (e *element) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(e.name)
	for _, a := range e.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.value))
		sb.WriteByte('"')
	}

	switch {
	case len(e.children) > 0:
		sb.WriteString(">\n")
		for _, c := range e.children {
			c.write(sb, depth+1)
		}
		sb.WriteString(indent)
	case e.hasText:
		sb.WriteByte('>')
		sb.WriteString(textEscaper.Replace(strings.Join(strings.Fields(e.text), " ")))
	default:
		sb.WriteString("/>\n")
		return
	}
	sb.WriteString("</")
	sb.WriteString(e.name)
	sb.WriteString(">\n")
}

func (e *element) String() string {
	var sb strings.Builder
	e.write(&sb, 0)
	return strings.TrimSpace(sb.String())
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)
