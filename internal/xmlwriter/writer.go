// =============================================================================
// Sales Reporter - XML Writer Module
// =============================================================================
//
// This module serializes a small element tree into an indented XML document.
// The renderer builds the tree for each report; this package knows nothing
// about reports. Output is deterministic: attributes and children are written
// in insertion order, so equal trees always produce equal bytes.
//
// XML STRUCTURE (example, hourly revenue):
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <hourlyRevenue range="20:00-00:00">
//     <hour value="20">1.57</hour>
//     <hour value="21">10.00</hour>
//     <hour value="22">0.00</hour>
//     <hour value="23">0.10</hour>
//   </hourlyRevenue>
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// Options contains options for XML generation.
type Options struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeDeclaration determines whether to write the XML declaration.
	// Default: true
	IncludeDeclaration bool

	// Version is the XML version for the declaration.
	// Default: "1.0"
	Version string

	// Encoding is the encoding named in the declaration.
	// Default: "UTF-8"
	Encoding string
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Indent:             "  ",
		IncludeDeclaration: true,
		Version:            "1.0",
		Encoding:           "UTF-8",
	}
}

// =============================================================================
// ELEMENT TREE
// =============================================================================

// Element is one XML element. An element carries either text or children;
// when both are set the text wins.
type Element struct {
	Name       string
	Attributes []xml.Attr
	Value      string
	Children   []*Element
}

// NewElement creates an element with a text value.
func NewElement(name, value string) *Element {
	return &Element{Name: name, Value: value}
}

// Attr appends an attribute and returns the element for chaining.
func (e *Element) Attr(name, value string) *Element {
	e.Attributes = append(e.Attributes, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return e
}

// Add appends child elements and returns the element for chaining.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Marshal renders root as a complete document with the default options.
func Marshal(root *Element) ([]byte, error) {
	return MarshalWithOptions(root, DefaultOptions())
}

// MarshalWithOptions renders root as a complete document.
//
// PARAMETERS:
//   - root: The document element.
//   - options: The generation options.
//
// RETURNS:
//   - The XML document as a byte slice, ending in a newline.
//   - An error if an element or attribute name is not a valid XML name.
func MarshalWithOptions(root *Element, options Options) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("failed to marshal XML: no root element")
	}
	if err := checkNames(root); err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}

	var buffer bytes.Buffer

	if options.IncludeDeclaration {
		fmt.Fprintf(&buffer, "<?xml version=\"%s\" encoding=\"%s\"?>\n", options.Version, options.Encoding)
	}

	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element *Element, indent string, level int) {
	prefix := strings.Repeat(indent, level)

	buffer.WriteString(prefix)
	buffer.WriteString("<")
	buffer.WriteString(element.Name)

	for _, attr := range element.Attributes {
		fmt.Fprintf(buffer, " %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		buffer.WriteString(prefix)
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML. Line breaks and tabs are
// written as character references so attribute values survive normalization.
func escapeXML(s string) string {
	var buffer strings.Builder

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		case '\n':
			buffer.WriteString("&#xA;")
		case '\r':
			buffer.WriteString("&#xD;")
		case '\t':
			buffer.WriteString("&#x9;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// checkNames walks the tree and rejects names XML cannot represent.
func checkNames(element *Element) error {
	if !isName(element.Name) {
		return fmt.Errorf("invalid element name %q", element.Name)
	}
	for _, attr := range element.Attributes {
		if !isName(attr.Name.Local) {
			return fmt.Errorf("invalid attribute name %q on <%s>", attr.Name.Local, element.Name)
		}
	}
	for _, child := range element.Children {
		if err := checkNames(child); err != nil {
			return err
		}
	}
	return nil
}

// isName reports whether s is a usable element or attribute name. Prefixed
// (namespaced) names are not supported.
func isName(s string) bool {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
