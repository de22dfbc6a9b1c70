package formattree

import (
	"fmt"

	"github.com/beevik/etree"
)

// Document is the serializable form of a Node, used for YAML, JSON and the
// cache.
type Document struct {
	Kind    string      `json:"kind" yaml:"kind"`
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	Indices []string    `json:"indices,omitempty" yaml:"indices,omitempty"`
	Items   []*Document `json:"items,omitempty" yaml:"items,omitempty"`
	Counter string      `json:"counter,omitempty" yaml:"counter,omitempty"`
	Size    string      `json:"size,omitempty" yaml:"size,omitempty"`
	Body    *Document   `json:"body,omitempty" yaml:"body,omitempty"`
}

// Document kinds
const (
	KindItem     = "item"
	KindNewline  = "newline"
	KindSequence = "sequence"
	KindLoop     = "loop"
)

// Encode converts node to a Document. A nil node encodes to nil.
func Encode(node Node) *Document {
	switch n := node.(type) {
	case Item:
		return &Document{Kind: KindItem, Name: n.Name, Indices: n.Indices}
	case Newline:
		return &Document{Kind: KindNewline}
	case Sequence:
		items := make([]*Document, len(n.Items))
		for i, item := range n.Items {
			items[i] = Encode(item)
		}

		return &Document{Kind: KindSequence, Items: items}
	case Loop:
		return &Document{Kind: KindLoop, Counter: n.Counter, Size: n.Size, Body: Encode(n.Body)}
	default:
		return nil
	}
}

// Decode converts a Document back into a Node.
func Decode(doc *Document) (Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: missing node", ErrInvalidDocument)
	}

	switch doc.Kind {
	case KindItem:
		if doc.Name == "" {
			return nil, fmt.Errorf("%w: item without name", ErrInvalidDocument)
		}

		return NewItem(doc.Name, doc.Indices...), nil
	case KindNewline:
		return Newline{}, nil
	case KindSequence:
		items := make([]Node, len(doc.Items))
		for i, item := range doc.Items {
			node, err := Decode(item)
			if err != nil {
				return nil, err
			}

			items[i] = node
		}

		return Sequence{Items: items}, nil
	case KindLoop:
		body, err := Decode(doc.Body)
		if err != nil {
			return nil, err
		}

		return Loop{Counter: doc.Counter, Size: doc.Size, Body: body}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDocument, doc.Kind)
	}
}

// ToXML renders node as an XML document:
//
//	<sequence><item name="N"/><newline/><loop counter="i" size="N">...</loop></sequence>
func ToXML(node Node) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	appendXML(&doc.Element, node)
	doc.Indent(2)

	return doc
}

func appendXML(parent *etree.Element, node Node) {
	switch n := node.(type) {
	case Item:
		elem := parent.CreateElement(KindItem)
		elem.CreateAttr("name", n.Name)

		for _, index := range n.Indices {
			elem.CreateElement("index").SetText(index)
		}
	case Newline:
		parent.CreateElement(KindNewline)
	case Sequence:
		elem := parent.CreateElement(KindSequence)
		for _, item := range n.Items {
			appendXML(elem, item)
		}
	case Loop:
		elem := parent.CreateElement(KindLoop)
		elem.CreateAttr("counter", n.Counter)
		elem.CreateAttr("size", n.Size)
		appendXML(elem, n.Body)
	}
}

// FromXML parses a document written by ToXML.
func FromXML(s string) (Node, error) {
	doc := etree.NewDocument()

	err := doc.ReadFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty XML document", ErrInvalidDocument)
	}

	return fromElement(root)
}

func fromElement(elem *etree.Element) (Node, error) {
	switch elem.Tag {
	case KindItem:
		var indices []string
		for _, index := range elem.SelectElements("index") {
			indices = append(indices, index.Text())
		}

		return NewItem(elem.SelectAttrValue("name", ""), indices...), nil
	case KindNewline:
		return Newline{}, nil
	case KindSequence:
		var items []Node

		for _, child := range elem.ChildElements() {
			item, err := fromElement(child)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
		}

		return Sequence{Items: items}, nil
	case KindLoop:
		children := elem.ChildElements()
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: loop must have exactly one body", ErrInvalidDocument)
		}

		body, err := fromElement(children[0])
		if err != nil {
			return nil, err
		}

		return Loop{Counter: elem.SelectAttrValue("counter", ""), Size: elem.SelectAttrValue("size", ""), Body: body}, nil
	default:
		return nil, fmt.Errorf("%w: unknown element <%s>", ErrInvalidDocument, elem.Tag)
	}
}
