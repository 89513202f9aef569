// Package sentence fills fact-type templates with example data.
//
// A template marks substitution points with positional placeholders
// <val1>, <val2>, ... Each data row is rendered independently into one
// quoted line of the export format.
package sentence

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultSentinel replaces placeholders that have no corresponding value.
const DefaultSentinel = "###MISSING###"

// placeholderPattern matches any placeholder left after substitution.
var placeholderPattern = regexp.MustCompile(`<val\d+>`)

// Renderer renders data rows against templates.
// The zero value uses DefaultSentinel.
type Renderer struct {
	Sentinel string
}

// Render substitutes values into template with the default sentinel.
func Render(template string, values []string) string {
	return Renderer{}.Render(template, values)
}

// Render replaces every <valN> with values[N-1], wraps the result in double
// quotes and terminates it with a newline. Placeholders without a value
// become the sentinel; surplus values are ignored.
//
// Substitution runs in value order, so a value that itself contains a later
// placeholder is expanded again by that later pass.
func (r Renderer) Render(template string, values []string) string {
	sentence := `"` + substitute(template, values) + `"`
	sentence = placeholderPattern.ReplaceAllLiteralString(sentence, r.sentinel())

	return sentence + "\n"
}

// Unresolved returns the placeholders that Render turns into the sentinel
// for this row, in order of first appearance. Placeholders brought in by a
// value count like those of the template.
func Unresolved(template string, values []string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllString(substitute(template, values), -1) {
		if !seen[m] {
			seen[m] = true
			missing = append(missing, m)
		}
	}
	return missing
}

// substitute replaces <val1>, <val2>, ... in value order.
func substitute(template string, values []string) string {
	sentence := template
	for i, value := range values {
		sentence = strings.ReplaceAll(sentence, placeholder(i+1), value)
	}
	return sentence
}

func (r Renderer) sentinel() string {
	if r.Sentinel == "" {
		return DefaultSentinel
	}
	return r.Sentinel
}

func placeholder(pos int) string {
	return "<val" + strconv.Itoa(pos) + ">"
}
