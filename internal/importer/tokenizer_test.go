package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want RawRow
	}{
		{"single plain field", "hello world", RawRow{"hello world"}},
		{"quoted comma", `"a,b",c`, RawRow{"a,b", "c"}},
		{"escaped quote", `"a""b",c`, RawRow{`a"b`, "c"}},
		{"semicolon separator", "a;b;c", RawRow{"a", "b", "c"}},
		{"mixed separators", "a,b;c", RawRow{"a", "b", "c"}},
		{"quoted semicolon", `"x;y";z`, RawRow{"x;y", "z"}},
		{"trailing separator keeps empty field", "a,b,", RawRow{"a", "b", ""}},
		{"empty line", "", RawRow{""}},
		{"no trimming", " a , b ", RawRow{" a ", " b "}},
		{"accented text", "Qual è,sì", RawRow{"Qual è", "sì"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}

func TestSplitLine_RoundTripPlainValues(t *testing.T) {
	values := []string{"abc", "Qual è la formula", "  spaced  ", "123.45", "", "àèìòù"}
	for _, v := range values {
		fields := SplitLine(v)
		assert.Len(t, fields, 1, v)
		assert.Equal(t, v, fields[0])
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("a,b\r\nc,d\n\ne,f")
	assert.Equal(t, []string{"a,b", "c,d", "", "e,f"}, lines)
}

func TestFormatLine_ReadBack(t *testing.T) {
	fields := []string{"plain", "with,comma", `with "quote"`, "semi;colon", ""}
	assert.Equal(t, RawRow(fields), SplitLine(FormatLine(fields)))
}
