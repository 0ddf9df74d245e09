package mods

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// ErrMalformedDocument marks a metadata file that cannot be parsed as
// well-formed MODS XML. Fatal for the batch, never for the run.
var ErrMalformedDocument = errors.New("malformed document")

// Document is one parsed STATUTE volume metadata file.
type Document struct {
	root *etree.Element
	path string
}

// ParseFile loads and parses a mods.xml file.
func ParseFile(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, path, err)
	}
	return wrap(doc, path)
}

// Parse reads a MODS document from r. Used by tests and callers that hold
// the document in memory.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return wrap(doc, "")
}

func wrap(doc *etree.Document, path string) (*Document, error) {
	root := doc.Root()
	if root == nil || root.Tag != "mods" {
		return nil, fmt.Errorf("%w: %s: missing mods root element", ErrMalformedDocument, path)
	}
	return &Document{root: root, path: path}, nil
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Congress returns the congress number recorded in the document-level
// extension blocks.
func (d *Document) Congress() (string, error) {
	if value := d.extensionText("congress"); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s: no congress in document extensions", ErrMalformedDocument, d.path)
}

// PackageID returns the GPO package access identifier for the volume.
func (d *Document) PackageID() (string, error) {
	if value := d.extensionText("accessId"); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s: no accessId in document extensions", ErrMalformedDocument, d.path)
}

// extensionText scans the document-level extension elements for the first
// child with the given tag and returns its trimmed text. The position of the
// extension block carrying a given field varies between volumes, so all of
// them are searched.
func (d *Document) extensionText(tag string) string {
	for _, ext := range d.root.SelectElements("extension") {
		if child := ext.SelectElement(tag); child != nil {
			if text := strings.TrimSpace(child.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// Items returns the embedded enactable units (MODS relatedItem elements)
// in document order.
func (d *Document) Items() []Node {
	elements := d.root.SelectElements("relatedItem")
	items := make([]Node, 0, len(elements))
	for _, el := range elements {
		items = append(items, Node{el: el})
	}
	return items
}

// Node wraps one element of the document tree and exposes path queries.
// Paths use etree syntax relative to the node; tags without a namespace
// prefix match elements in any namespace, and attribute filters such as
// url[@displayLabel='PDF rendition'] are supported.
type Node struct {
	el *etree.Element
}

// Zero reports whether the node is empty (no underlying element).
func (n Node) Zero() bool {
	return n.el == nil
}

// Text returns the trimmed text of the first element matching path,
// or "" when nothing matches.
func (n Node) Text(path string) string {
	if n.el == nil {
		return ""
	}
	el := n.el.FindElement(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Find returns the first element matching path.
func (n Node) Find(path string) Node {
	if n.el == nil {
		return Node{}
	}
	return Node{el: n.el.FindElement(path)}
}

// FindAll returns all elements matching path, in document order.
func (n Node) FindAll(path string) []Node {
	if n.el == nil {
		return nil
	}
	elements := n.el.FindElements(path)
	nodes := make([]Node, 0, len(elements))
	for _, el := range elements {
		nodes = append(nodes, Node{el: el})
	}
	return nodes
}

// Attr returns the value of the named attribute, or "" when absent.
func (n Node) Attr(name string) string {
	if n.el == nil {
		return ""
	}
	return n.el.SelectAttrValue(name, "")
}
