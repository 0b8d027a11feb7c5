// Package document parses MusicXML markup into a generic element tree.
//
// The tree is deliberately untyped: the score model reads it through the
// lookup helpers in lookup.go, which are the only place tag names are
// resolved. Nothing here knows about notes or measures.
package document

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoRoot is returned when the markup contains no element at all.
var ErrNoRoot = errors.New("document has no root element")

// Node is a single element of a parsed document.
type Node struct {
	// Name is the element's local name (namespace prefixes are dropped).
	Name string

	// Attrs holds attribute values keyed by local name.
	Attrs map[string]string

	// Children are the child elements in document order.
	Children []*Node

	// text is the element's own character data, excluding descendants.
	text []byte
}

// Parse reads markup from r and returns its root element.
//
// Encodings declared in the XML prolog are honoured via html/charset.
// Input starting with a UTF-16 or UTF-8 byte order mark is transcoded to
// UTF-8 before tokenizing, since encoding/xml only reads UTF-8.
func Parse(r io.Reader) (*Node, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	transcoded := false
	if head, err := br.Peek(2); err == nil && hasByteOrderMark(head, br) {
		src = transform.NewReader(br, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		transcoded = true
	}

	dec := xml.NewDecoder(src)
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if transcoded && strings.HasPrefix(strings.ToLower(label), "utf-16") {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				n.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.Attrs[a.Name.Local] = a.Value
				}
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			} else {
				return nil, fmt.Errorf("parse markup: second root element <%s>", n.Name)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text = append(top.text, t...)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func hasByteOrderMark(head []byte, br *bufio.Reader) bool {
	if (head[0] == 0xFE && head[1] == 0xFF) || (head[0] == 0xFF && head[1] == 0xFE) {
		return true
	}
	if head[0] == 0xEF && head[1] == 0xBB {
		full, err := br.Peek(3)
		return err == nil && full[2] == 0xBF
	}
	return false
}

// Walk visits n and its descendants in document order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}
