// Package csvutil renders semicolon-separated CSV the way spreadsheet tools
// in locales with a comma decimal separator expect it: ';' as the delimiter,
// CRLF line endings, and an optional UTF-8 BOM so Excel detects the encoding.
package csvutil

import (
	"strings"
)

// BOM is the UTF-8 byte order mark, prepended to exports meant for Excel.
const BOM = "\xEF\xBB\xBF"

// Field quotes a single value when it contains the delimiter, a quote or a
// line break. Quotes inside are doubled.
func Field(v string) string {
	if !strings.ContainsAny(v, ";\"\n\r") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Render joins rows into one document. Every row ends with CRLF, including
// the last one.
func Render(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(Field(v))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}
