package facttype

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
)

var (
	// ErrInputNotFound is returned by Load when the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrEmptyInput is returned for an input with no JSON value in it.
	ErrEmptyInput = errors.New("input is empty")
	// ErrInvalidJSON wraps syntax errors reported by the parser. Comments
	// and trailing commas are syntax errors unless the Parser allows them.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNotArray is returned when the top-level value is not an array.
	ErrNotArray = errors.New("top-level value must be an array of fact-types")
)

// Parser decodes fact-type documents.
// The zero value accepts standard JSON only.
type Parser struct {
	// AllowComments accepts JSONC: comments and trailing commas.
	AllowComments bool
}

// Load reads and parses the fact-type document at path as standard JSON.
func Load(path string) ([]*Record, error) {
	return Parser{}.Load(path)
}

// Parse decodes a fact-type document as standard JSON.
func Parse(data []byte) ([]*Record, error) {
	return Parser{}.Parse(data)
}

// Load reads and parses the fact-type document at path.
func (p Parser) Load(path string) ([]*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(data)
}

// Parse decodes a fact-type document. Object keys keep their document
// order, which drives the order of the rendered metadata lines.
//
// Every record is validated; all validation failures are returned joined.
func (p Parser) Parse(data []byte) ([]*Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	root, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if !p.AllowComments && !root.IsStandard() {
		return nil, fmt.Errorf("%w: comments and trailing commas are not allowed", ErrInvalidJSON)
	}

	arr, ok := root.Value.(*hujson.Array)
	if !ok {
		return nil, ErrNotArray
	}

	records := make([]*Record, 0, len(arr.Elements))
	var errs []error
	for i, elem := range arr.Elements {
		rec, recErrs := decodeRecord(i, elem)
		if len(recErrs) > 0 {
			errs = append(errs, recErrs...)
			continue
		}
		records = append(records, rec)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return records, nil
}

// decodeRecord converts one array element into a Record.
func decodeRecord(index int, v hujson.Value) (*Record, []error) {
	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return nil, []error{&ValidationError{Index: index, Message: "fact-type must be a JSON object"}}
	}

	rec := &Record{Index: index}
	d := recordDecoder{rec: rec, positions: make(map[string]int)}
	hasTitle := false

	for _, member := range obj.Members {
		key := literalText(member.Name)
		val := member.Value

		switch key {
		case KeyTitle:
			hasTitle = true
			rec.Title = d.requireString(key, val)
		case KeyModel:
			rec.Model = d.requireString(key, val)
			if strings.ContainsAny(rec.Model, `/\`) {
				d.fail(key, "must not contain a path separator")
			}
		case KeyTemplate:
			rec.HasTemplate = true
			rec.Template = d.requireString(key, val)
		case KeyTags:
			rec.Tags = d.stringList(key, val)
			d.setField(KeyTags, "")
		case KeyData:
			rec.HasData = true
			rec.Data = d.rows(key, val)
		default:
			d.setField(key, valueText(val))
		}
	}

	if !hasTitle {
		d.fail(KeyTitle, "required field is missing")
	}
	if rec.HasData && !rec.HasTemplate {
		d.fail(KeyTemplate, "required when data is present")
	}

	for _, err := range d.errs {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			vErr.Title = rec.Title
		}
	}
	return rec, d.errs
}

// recordDecoder accumulates a record and its validation errors.
type recordDecoder struct {
	rec       *Record
	positions map[string]int
	errs      []error
}

func (d *recordDecoder) fail(field, message string) {
	d.errs = append(d.errs, &ValidationError{Index: d.rec.Index, Field: field, Message: message})
}

// setField records a metadata value. A repeated key keeps its first
// position and takes the last value.
func (d *recordDecoder) setField(key, value string) {
	if pos, ok := d.positions[key]; ok {
		d.rec.Metadata[pos].Value = value
		return
	}
	d.positions[key] = len(d.rec.Metadata)
	d.rec.Metadata = append(d.rec.Metadata, Field{Key: key, Value: value})
}

func (d *recordDecoder) requireString(key string, v hujson.Value) string {
	lit, ok := v.Value.(hujson.Literal)
	if !ok || lit.Kind() != '"' {
		d.fail(key, "must be a string")
		return ""
	}
	return lit.String()
}

func (d *recordDecoder) stringList(key string, v hujson.Value) []string {
	arr, ok := v.Value.(*hujson.Array)
	if !ok {
		d.fail(key, "must be an array")
		return nil
	}
	out := make([]string, 0, len(arr.Elements))
	for _, elem := range arr.Elements {
		out = append(out, valueText(elem))
	}
	return out
}

func (d *recordDecoder) rows(key string, v hujson.Value) [][]string {
	arr, ok := v.Value.(*hujson.Array)
	if !ok {
		d.fail(key, "must be an array of rows")
		return nil
	}
	out := make([][]string, 0, len(arr.Elements))
	for i, elem := range arr.Elements {
		if _, isArr := elem.Value.(*hujson.Array); !isArr {
			d.fail(fmt.Sprintf("%s[%d]", key, i), "row must be an array")
			continue
		}
		out = append(out, d.stringList(key, elem))
	}
	return out
}

// literalText returns the unescaped text of an object member name.
func literalText(v hujson.Value) string {
	if lit, ok := v.Value.(hujson.Literal); ok {
		return lit.String()
	}
	return v.String()
}

// valueText renders a JSON value for the export file: strings are
// unescaped, anything else is written as compact JSON.
func valueText(v hujson.Value) string {
	if lit, ok := v.Value.(hujson.Literal); ok && lit.Kind() == '"' {
		return lit.String()
	}
	c := v.Clone()
	c.Minimize()
	return string(c.Pack())
}
