package document

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotFound is returned by typed lookups when the element is absent.
var ErrNotFound = errors.New("element not found")

// ElementsByTag returns every descendant named name, in document order.
// The receiver itself is not included.
func (n *Node) ElementsByTag(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.collect(name, &out)
	}
	return out
}

func (n *Node) collect(name string, out *[]*Node) {
	if n.Name == name {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		c.collect(name, out)
	}
}

// First returns the first descendant named name, or nil.
func (n *Node) First(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if found := c.First(name); found != nil {
			return found
		}
	}
	return nil
}

// Has reports whether any descendant is named name.
func (n *Node) Has(name string) bool {
	return n.First(name) != nil
}

// Attr returns the attribute value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Text returns the trimmed character data of n followed by that of its
// descendants. Leaf elements, which is all the model reads, are exact.
func (n *Node) Text() string {
	if len(n.Children) == 0 {
		return strings.TrimSpace(string(n.text))
	}

	var b strings.Builder
	b.Write(n.text)
	for _, c := range n.Children {
		b.WriteString(c.Text())
	}
	return strings.TrimSpace(b.String())
}

// TextOf returns the text of the first descendant named name.
func (n *Node) TextOf(name string) (string, bool) {
	found := n.First(name)
	if found == nil {
		return "", false
	}
	return found.Text(), true
}

// IntOf parses the first descendant named name as an integer.
//
// Integral decimals such as "2.0" are accepted since the MusicXML schema
// types several integer-valued fields as decimals. ErrNotFound is returned
// when the element is missing.
func (n *Node) IntOf(name string) (int, error) {
	text, ok := n.TextOf(name)
	if !ok {
		return 0, ErrNotFound
	}
	return ParseInt(text)
}

// ParseInt parses an integer, accepting integral decimal notation.
func ParseInt(text string) (int, error) {
	if v, err := strconv.Atoi(text); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer: %q", text)
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("out of range: %q", text)
	}
	return int(f), nil
}
