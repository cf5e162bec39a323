// Package schema holds the json schemas of the documents exchanged
// between the comment form client and the comment server.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hugocs/hugocs/util"
)

var ErrInvalidDocument = errors.New("invalid document")

// ValidationError lists the schema violations of a document.
type ValidationError struct {
	Schema string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDocument
}

// Schema is a named, compiled json schema.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Name returns the name of the schema.
func (s *Schema) Name() string {
	return s.name
}

// Validate validates the json document data. It returns a
// *ValidationError if data does not conform to the schema.
func (s *Schema) Validate(data []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", s.name, ErrInvalidDocument, err)
	}

	if res.Valid() {
		return nil
	}

	errs := make([]string, 0, len(res.Errors()))
	for _, desc := range res.Errors() {
		errs = append(errs, desc.String())
	}

	return &ValidationError{Schema: s.name, Errors: errs}
}

func load(name string, data []byte) (*Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}

	return &Schema{name: name, schema: schema}, nil
}

//go:embed response.json
var responseData []byte

//go:embed comment.json
var commentData []byte

var (
	response = util.Must(load("response", responseData))
	comment  = util.Must(load("comment", commentData))
)

// Response returns the schema of the comment endpoint's json response.
func Response() *Schema {
	return response
}

// Comment returns the schema of a stored comment document.
func Comment() *Schema {
	return comment
}
