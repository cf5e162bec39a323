package client

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultFormID is the id of the comment form element.
	DefaultFormID = "comment-form"

	// FieldClass marks the elements of the form that are submitted.
	FieldClass = "comment-form__field"
)

var (
	ErrFormNotFound = errors.New("form not found")
	ErrUnknownField = errors.New("unknown field")
)

// Field is a named form control with its current and initial value.
type Field struct {
	Name    string
	Value   string
	Default string
}

// Form is the set of fields submitted together, in document order.
type Form struct {
	ID     string
	Action string
	Method string
	Fields []*Field
}

// NewForm creates a form from fields. Every field starts out with its
// default value.
func NewForm(id string, fields ...Field) *Form {
	form := &Form{ID: id, Method: "post"}

	for _, f := range fields {
		form.Fields = append(form.Fields, &Field{
			Name:    f.Name,
			Value:   f.Default,
			Default: f.Default,
		})
	}

	return form
}

// Get returns the current value of the first field named name.
func (f *Form) Get(name string) (string, bool) {
	if field := f.field(name); field != nil {
		return field.Value, true
	}

	return "", false
}

// Set sets the current value of the first field named name.
func (f *Form) Set(name, value string) error {
	field := f.field(name)
	if field == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	field.Value = value
	return nil
}

// Reset restores every field to its default value.
func (f *Form) Reset() {
	for _, field := range f.Fields {
		field.Value = field.Default
	}
}

// Payload captures the current field values in document order.
func (f *Form) Payload() Payload {
	payload := make(Payload, 0, len(f.Fields))

	for _, field := range f.Fields {
		payload = append(payload, Pair{Name: field.Name, Value: field.Value})
	}

	return payload
}

// Clone returns a deep copy of the form.
func (f *Form) Clone() *Form {
	clone := *f
	clone.Fields = make([]*Field, len(f.Fields))

	for i, field := range f.Fields {
		copied := *field
		clone.Fields[i] = &copied
	}

	return &clone
}

func (f *Form) field(name string) *Field {
	for _, field := range f.Fields {
		if field.Name == name {
			return field
		}
	}

	return nil
}

// ParseForm reads an html document and returns the form with the given
// id. Only descendants carrying the FieldClass class are collected.
func ParseForm(r io.Reader, id string) (*Form, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	if id == "" {
		id = DefaultFormID
	}

	node := findByID(doc, id)
	if node == nil {
		return nil, fmt.Errorf("%w: #%s", ErrFormNotFound, id)
	}

	form := &Form{
		ID:     id,
		Action: attr(node, "action"),
		Method: strings.ToLower(attr(node, "method")),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, FieldClass) {
			if field, ok := parseField(n); ok {
				form.Fields = append(form.Fields, field)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := node.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return form, nil
}

func parseField(n *html.Node) (*Field, bool) {
	var value string

	switch n.DataAtom {
	case atom.Input:
		v, ok := attrOk(n, "value")
		if !ok {
			switch strings.ToLower(attr(n, "type")) {
			case "checkbox", "radio":
				v = "on"
			}
		}
		value = v
	case atom.Textarea:
		value = text(n)
	case atom.Select:
		value = selectedOption(n)
	default:
		return nil, false
	}

	return &Field{
		Name:    attr(n, "name"),
		Value:   value,
		Default: value,
	}, true
}

func selectedOption(n *html.Node) string {
	var first, selected *html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			if first == nil {
				first = n
			}
			if _, ok := attrOk(n, "selected"); ok && selected == nil {
				selected = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	option := selected
	if option == nil {
		option = first
	}
	if option == nil {
		return ""
	}

	if v, ok := attrOk(option, "value"); ok {
		return v
	}

	return strings.TrimSpace(text(option))
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}

	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}

	return false
}

func attr(n *html.Node, key string) string {
	v, _ := attrOk(n, key)
	return v
}

func attrOk(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

func text(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}
