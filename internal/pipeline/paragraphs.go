package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-txt2pdf/internal/format"
)

// ErrHTMLConversion indicates HTML rendering failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultTitle is used when a document has no title.
const DefaultTitle = "Document"

// paragraphClass marks paragraphs produced from directives so styles can
// target them without affecting injected content.
const paragraphClass = "txt-paragraph"

// HTMLConverter abstracts paragraph to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, title string, paragraphs []format.Paragraph) (string, error)
}

// ParagraphRenderer renders paragraphs as a standalone HTML5 document.
// Margins and font sizes are written as inline styles in points, so the
// layout survives any stylesheet that does not use !important.
type ParagraphRenderer struct{}

// NewParagraphRenderer creates a ParagraphRenderer.
func NewParagraphRenderer() *ParagraphRenderer {
	return &ParagraphRenderer{}
}

// ToHTML builds the document tree and renders it.
func (r *ParagraphRenderer) ToHTML(ctx context.Context, title string, paragraphs []format.Paragraph) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultTitle
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	titleNode := element(atom.Title)
	titleNode.AppendChild(textNode(title))
	head.AppendChild(titleNode)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	for i, p := range paragraphs {
		if i%64 == 0 && ctx.Err() != nil {
			return "", ctx.Err()
		}
		body.AppendChild(paragraphNode(p))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// paragraphNode renders one paragraph. Runs are separated by a single
// space, the way consecutive input lines join in filled text.
func paragraphNode(p format.Paragraph) *html.Node {
	class := paragraphClass
	if p.Empty() {
		class += " empty"
	}
	n := element(atom.P,
		html.Attribute{Key: "class", Val: class},
		html.Attribute{Key: "style", Val: fmt.Sprintf("margin-left: %s; text-align: %s", points(p.MarginLeft), p.Align)},
	)

	for i, run := range p.Runs {
		if i > 0 {
			n.AppendChild(textNode(" "))
		}
		n.AppendChild(runNode(run))
	}
	return n
}

// runNode renders a run as a sized span, wrapped in strong or em.
func runNode(run format.TextRun) *html.Node {
	span := element(atom.Span, html.Attribute{Key: "style", Val: "font-size: " + points(run.Size)})
	span.AppendChild(textNode(run.Text))

	switch {
	case run.Bold:
		strong := element(atom.Strong)
		strong.AppendChild(span)
		return strong
	case run.Italic:
		em := element(atom.Em)
		em.AppendChild(span)
		return em
	}
	return span
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
