package export

import "strings"

// MarshalCSV serializes a relation to delimited text: fields comma-joined,
// rows newline-joined, header first, no trailing delimiter or newline.
//
// A field is wrapped in double quotes - with internal double quotes
// doubled - only when it contains a comma, a double quote, or a newline.
// Empty values serialize as empty fields, never as a placeholder word.
//
// This is a pure, total function. It does not use encoding/csv because the
// wire contract differs from that writer's output: no trailing record
// terminator, LF line endings, and quoting only when required.
func MarshalCSV(r Relation) string {
	var b strings.Builder

	writeRow(&b, r.Header)
	for _, row := range r.Rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}

	return b.String()
}

func writeRow(b *strings.Builder, row []string) {
	for i, field := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		writeField(b, field)
	}
}

func writeField(b *strings.Builder, field string) {
	if !strings.ContainsAny(field, ",\"\n\r") {
		b.WriteString(field)
		return
	}
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(field, `"`, `""`))
	b.WriteByte('"')
}
