package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gorewood/casewalker/internal/facttype"
	"github.com/gorewood/casewalker/internal/sentence"
)

const (
	// FileMarker is the first line of every export file.
	FileMarker = "[EXPFILE]"

	dividerWidth    = 70
	labelWidth      = 20
	generatedLabel  = "Generated on"
	tagSeparator    = ", "
	timestampLayout = "2006-01-02 15:04:05.000000"
)

var divider = strings.Repeat("*", dividerWidth)

// Formatter turns records into export blocks.
type Formatter struct {
	// Now stamps the "Generated on" line. Defaults to time.Now.
	Now func() time.Time
	// Renderer fills the template for each data row.
	Renderer sentence.Renderer
}

// Format renders rec as one export block and returns it together with the
// record's model label ("" when the record has none).
//
// The title header always comes first and the sentences always come last;
// metadata and tags lines follow the record's key order in between.
func (f *Formatter) Format(rec *facttype.Record) (string, string) {
	var builder strings.Builder

	f.writeHeader(&builder, rec)
	writeMetadata(&builder, rec)
	f.writeSentences(&builder, rec)
	builder.WriteString("\n")

	return builder.String(), rec.Model
}

// writeHeader writes the boxed title and the generation timestamp.
func (f *Formatter) writeHeader(builder *strings.Builder, rec *facttype.Record) {
	fmt.Fprintf(builder, "; %s\n", divider)
	fmt.Fprintf(builder, "; FACT-TYPE: %s\n", upper(rec.Title))
	fmt.Fprintf(builder, "; %s\n", divider)
	writeLabel(builder, generatedLabel, f.now().Format(timestampLayout))
}

// writeMetadata writes one line per metadata field, tags included.
func writeMetadata(builder *strings.Builder, rec *facttype.Record) {
	for _, field := range rec.Metadata {
		if field.Key == facttype.KeyTags {
			writeLabel(builder, capitalize(field.Key), formatTags(rec.Tags))
			continue
		}
		writeLabel(builder, capitalize(field.Key), field.Value)
	}
}

// writeSentences renders every data row against the template.
func (f *Formatter) writeSentences(builder *strings.Builder, rec *facttype.Record) {
	for _, row := range rec.Data {
		builder.WriteString(f.Renderer.Render(rec.Template, row))
	}
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// writeLabel writes "; <label padded to 20>: <value>".
func writeLabel(builder *strings.Builder, label, value string) {
	fmt.Fprintf(builder, "; %-*s: %s\n", labelWidth, label, value)
}

// formatTags renders tags as "#A, #B".
func formatTags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+upper(tag))
	}
	return strings.Join(parts, tagSeparator)
}

// upper applies full Unicode upper-casing ("straße" becomes "STRASSE").
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// capitalize title-cases the first character and lower-cases the rest.
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Title(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}
