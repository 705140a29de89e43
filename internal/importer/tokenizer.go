package importer

import "strings"

// RawRow is the positional output of tokenizing one line.
type RawRow []string

// SplitLine tokenizes a single line. Both ',' and ';' separate fields outside
// quotes, and a doubled quote inside a quoted field is a literal quote.
// Fields are returned untrimmed and a trailing separator yields a trailing
// empty field.
func SplitLine(line string) RawRow {
	var (
		fields   RawRow
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case (ch == ',' || ch == ';') && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// SplitLines breaks file content into lines, dropping the '\r' of CRLF endings.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
