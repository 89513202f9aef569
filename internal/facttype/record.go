// Package facttype provides the fact-type record model and its JSON loader.
package facttype

import (
	"fmt"
	"slices"
	"strings"
)

// Reserved keys are consumed by the formatter itself and never rendered
// as generic metadata.
const (
	KeyTitle    = "title"
	KeyModel    = "model"
	KeyTags     = "tags"
	KeyTemplate = "template"
	KeyData     = "data"
)

// Field is one metadata entry of a record.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is a single fact-type: a titled sentence template with example rows.
type Record struct {
	// Index is the zero-based position of the record in the input document.
	Index int `json:"index"`

	Title    string     `json:"title"`
	Model    string     `json:"model,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	Template string     `json:"template,omitempty"`
	Data     [][]string `json:"data,omitempty"`

	// Metadata holds every non-reserved key in document order. When the
	// record has tags, a Field with Key KeyTags marks where the tags line
	// goes; its Value is unused.
	Metadata []Field `json:"metadata,omitempty"`

	HasTemplate bool `json:"-"`
	HasData     bool `json:"-"`
}

// IsReserved reports whether key is handled by the formatter rather than
// rendered as generic metadata.
func IsReserved(key string) bool {
	switch key {
	case KeyTitle, KeyModel, KeyTags, KeyTemplate, KeyData:
		return true
	}
	return false
}

// SortByTitle sorts records ascending by title. Records with equal titles
// keep their document order.
func SortByTitle(records []*Record) {
	slices.SortStableFunc(records, func(a, b *Record) int {
		return strings.Compare(a.Title, b.Title)
	})
}

// ValidationError describes a record that cannot be converted.
type ValidationError struct {
	Index   int
	Title   string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	where := fmt.Sprintf("record %d", e.Index)
	if e.Title != "" {
		where += fmt.Sprintf(" (%q)", e.Title)
	}
	if e.Field == "" {
		return where + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %s", where, e.Field, e.Message)
}
