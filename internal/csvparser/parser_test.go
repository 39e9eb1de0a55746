package csvparser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ginjaninja78/sales-reporter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSettings() config.CSVSettings {
	return config.Default().CSV
}

func allFields(t *testing.T, record *Record) []string {
	t.Helper()
	var fields []string
	for record.Remaining() > 0 {
		field, err := record.ParseNextField()
		require.NoError(t, err)
		fields = append(fields, field)
	}
	return fields
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "Kwiki Mart,Springfield,Main St,Milk,2020-01-01T10:00:00+02:00,$1.50",
			want: []string{"Kwiki Mart", "Springfield", "Main St", "Milk", "2020-01-01T10:00:00+02:00", "$1.50"},
		},
		{
			name: "quoted delimiter",
			line: `Aibe,Vilnius,"Gedimino pr. 9, 2nd floor",Bread,2020-01-01T10:00:00Z,"$1,300.00"`,
			want: []string{"Aibe", "Vilnius", "Gedimino pr. 9, 2nd floor", "Bread", "2020-01-01T10:00:00Z", "$1,300.00"},
		},
		{
			name: "doubled quote",
			line: `"The ""Best"" Shop",A`,
			want: []string{`The "Best" Shop`, "A"},
		},
		{
			name: "quoted line break",
			line: "\"Line one\nLine two\",B",
			want: []string{"Line one\nLine two", "B"},
		},
		{
			name: "empty fields",
			line: "a,,c",
			want: []string{"a", "", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ParseLine(tt.line, defaultSettings())
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), record.Len())
			assert.Equal(t, tt.want, allFields(t, record))
		})
	}
}

func TestParseNextFieldPastEnd(t *testing.T) {
	record, err := ParseLine("a,b", defaultSettings())
	require.NoError(t, err)

	_, err = record.ParseNextField()
	require.NoError(t, err)
	_, err = record.ParseNextField()
	require.NoError(t, err)

	_, err = record.ParseNextField()
	assert.True(t, errors.Is(err, ErrNoMoreFields))
	assert.Equal(t, 0, record.Remaining())
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty", line: ""},
		{name: "unterminated quote", line: `"abc,def`},
		{name: "bare quote in field", line: `ab"c,d`},
		{name: "two records", line: "a,b\nc,d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line, defaultSettings())
			assert.Error(t, err)
		})
	}
}

func TestDelimiterAliases(t *testing.T) {
	tests := []struct {
		delimiter string
		line      string
	}{
		{delimiter: "tab", line: "a\tb"},
		{delimiter: "\\t", line: "a\tb"},
		{delimiter: "pipe", line: "a|b"},
		{delimiter: "semicolon", line: "a;b"},
		{delimiter: ":", line: "a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.delimiter, func(t *testing.T) {
			settings := defaultSettings()
			settings.Delimiter = tt.delimiter
			record, err := ParseLine(tt.line, settings)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, allFields(t, record))
		})
	}
}

func TestUnsupportedDelimiter(t *testing.T) {
	settings := defaultSettings()
	settings.Delimiter = `"`
	_, err := ParseLine("a", settings)
	assert.Error(t, err)

	settings.Delimiter = ",,"
	_, err = NewReader(strings.NewReader("a"), settings)
	assert.Error(t, err)
}

func TestReaderStreamsRecords(t *testing.T) {
	input := "Shop,City\n" +
		"A,One\n" +
		"\"B\nB\",Two\n" +
		"\n" +
		"C,Three\n"

	reader, err := NewReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)
	require.NoError(t, reader.SkipHeader(1))

	type row struct {
		line   int
		fields []string
	}
	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		rows = append(rows, row{line: record.Line(), fields: allFields(t, record)})
	}

	assert.Equal(t, []row{
		{line: 2, fields: []string{"A", "One"}},
		{line: 3, fields: []string{"B\nB", "Two"}},
		{line: 6, fields: []string{"C", "Three"}},
	}, rows)
}

func TestReaderSkipHeaderOnEmptyInput(t *testing.T) {
	reader, err := NewReader(strings.NewReader(""), defaultSettings())
	require.NoError(t, err)
	require.NoError(t, reader.SkipHeader(1))

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReaderDecodesSourceEncoding(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "windows-1252"

	reader, err := NewReader(strings.NewReader("Caf\xe9,M\xfcnchen\n"), settings)
	require.NoError(t, err)

	record, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Café", "München"}, allFields(t, record))
}

func TestReaderStripsByteOrderMark(t *testing.T) {
	reader, err := NewReader(strings.NewReader("\xef\xbb\xbfShop,City\n"), defaultSettings())
	require.NoError(t, err)

	record, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Shop", "City"}, allFields(t, record))
}

func TestReaderUnknownEncoding(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "klingon"

	_, err := NewReader(strings.NewReader(""), settings)
	assert.Error(t, err)
}
