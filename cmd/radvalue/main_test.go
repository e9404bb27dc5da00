package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ansel1/merry"
	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/radvalue/pkg/dictionaries"
	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"ipaddr", []string{"parse", "--type", "ipaddr", "10.0.0.1"}, "10.0.0.1\n"},
		{"several values", []string{"parse", "--type", "integer", "1", "0x10"}, "1\n16\n"},
		{"wire form", []string{"parse", "--type", "integer", "--wire", "1"}, "1\t00000001\n"},
		{"enumerated attribute", []string{"parse", "--attr", "Acct-Status-Type", "Interim-Update"}, "Alive\n"},
		{"double quoted output", []string{"parse", "--type", "string", "--quote", "double", `a\"b`}, "\"a\\\"b\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	t.Run("no type", func(t *testing.T) {
		_, err := run(t, "", "parse", "1")
		assert.Error(t, err)
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := run(t, "", "parse", "--type", "integer", "abc")
		assert.Error(t, err)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := run(t, "", "parse", "--attr", "No-Such-Attribute", "1")
		assert.True(t, merry.Is(err, dictionary.ErrAttributeNotFound), "got %v", err)
	})

	t.Run("unknown quote", func(t *testing.T) {
		_, err := run(t, "", "parse", "--type", "string", "--quote", "curly", "x")
		assert.True(t, merry.Is(err, valuebox.ErrParse), "got %v", err)
	})
}

func TestCastCommand(t *testing.T) {
	out, err := run(t, "", "cast", "--type", "ipaddr", "--to", "integer", "192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "3221225985\n", out)

	_, err = run(t, "", "cast", "--type", "bool", "--to", "integer", "yes")
	assert.True(t, merry.Is(err, valuebox.ErrInvalidCast), "got %v", err)

	_, err = run(t, "", "cast", "--type", "integer", "1")
	assert.Error(t, err, "--to is required")
}

func TestPrintBoundedCommand(t *testing.T) {
	out, err := run(t, "", "print-bounded", "--type", "string", "--size", "4", "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "012\nwritten=3 required=10 truncated=true\n", out)

	out, err = run(t, "", "print-bounded", "--type", "integer", "1234")
	require.NoError(t, err)
	assert.Equal(t, "1234\nwritten=4 required=4 truncated=false\n", out)

	_, err = run(t, "", "print-bounded", "--type", "integer", "--size", "-1", "1")
	assert.Error(t, err)
}

func TestCmpCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"integer greater", []string{"cmp", "--type", "integer", "1", ">", "2"}, "false\n"},
		{"integer equal", []string{"cmp", "--type", "integer", "7", "=", "7"}, "true\n"},
		{"prefix within", []string{"cmp", "--type", "ipv4prefix", "10.0.0.0/24", "<=", "10.0.0.0/8"}, "true\n"},
		{"prefix not within", []string{"cmp", "--type", "ipv4prefix", "10.0.0.0/8", "<=", "10.0.0.0/24"}, "false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	_, err := run(t, "", "cmp", "--type", "integer", "1", "=~", "2")
	assert.True(t, merry.Is(err, valuebox.ErrParse), "got %v", err)
}

func TestJSONCommand(t *testing.T) {
	input := `# session start
User-Name = "bob"
Framed-IP-Address = 10.0.0.1
Acct-Status-Type = Start
`
	out, err := run(t, input, "json")
	require.NoError(t, err)
	autogold.Expect(`{"Acct-Status-Type":{"type":"integer","value":[1],"mapping":["Start"]},"Framed-IP-Address":{"type":"ipaddr","value":["10.0.0.1"]},"User-Name":{"type":"string","value":["bob"]}}
`).Equal(t, out)

	out, err = run(t, "User-Name = bob\n", "json", "--prefix", "radius")
	require.NoError(t, err)
	assert.JSONEq(t, `{"radius:User-Name":{"type":"string","value":["bob"]}}`, out)
}

func TestFromJSONCommand(t *testing.T) {
	out, err := run(t, "", "from-json", "--", "42", `"x"`, "-1.5", "true")
	require.NoError(t, err)
	assert.Equal(t, "byte\t42\nstring\tx\ndecimal\t-1.5\nbool\tyes\n", out)

	out, err = run(t, "", "from-json", "--attr", "Acct-Status-Type", "1")
	require.NoError(t, err)
	assert.Equal(t, "integer\tStart\n", out)

	_, err = run(t, "", "from-json", "{")
	assert.True(t, merry.Is(err, valuebox.ErrParse), "got %v", err)
}

func TestEncodeDecodeCommands(t *testing.T) {
	out, err := run(t, "User-Name = bob\n", "encode")
	require.NoError(t, err)
	assert.Equal(t, "0105626f62\n", out)

	out, err = run(t, "", "decode", "0105626f62")
	require.NoError(t, err)
	assert.Equal(t, "User-Name = \"bob\"\n", out)

	out, err = run(t, "", "decode", "1a0c0000270f050661626364")
	require.NoError(t, err)
	assert.Equal(t, "Attr-26.9999.5 = 0x61626364\n", out)

	_, err = run(t, "", "decode", "zz")
	assert.Error(t, err)
}

func TestDictFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`attributes:
  - id: 250
    name: Site-Level
    data_type: byte
    values:
      Bronze: 1
      Gold: 3
`), 0o600))

	out, err := run(t, "", "parse", "--dict", path, "--attr", "Site-Level", "3")
	require.NoError(t, err)
	assert.Equal(t, "Gold\n", out)

	out, err = run(t, "", "parse", "--dict", path, "--attr", "User-Name", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob\n", out)

	_, err = run(t, "", "parse", "--dict", filepath.Join(t.TempDir(), "missing.yaml"), "--type", "integer", "1")
	assert.True(t, merry.Is(err, dictionary.ErrLoad), "got %v", err)
}

func TestReadPairs(t *testing.T) {
	dict, err := dictionaries.NewDefault()
	require.NoError(t, err)

	pairs, err := readPairs(strings.NewReader("\n# comment\nUser-Name = 'it\\'s'\nReply-Message = `a\\nb`\n"), dict)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "User-Name", pairs[0].Attr.Name)
	assert.Equal(t, "it's", string(pairs[0].Value.Bytes()))
	assert.Equal(t, "Reply-Message", pairs[1].Attr.Name)
	assert.Equal(t, "a\nb", string(pairs[1].Value.Bytes()))

	_, err = readPairs(strings.NewReader("User-Name bob\n"), dict)
	assert.Error(t, err)

	_, err = readPairs(strings.NewReader("Framed-IP-Address = nope\n"), dict)
	assert.Error(t, err)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in       string
		text     string
		expected valuebox.Quote
	}{
		{`"bob"`, "bob", valuebox.QuoteDouble},
		{`'bob'`, "bob", valuebox.QuoteSingle},
		{"`bob`", "bob", valuebox.QuoteBacktick},
		{"bob", "bob", valuebox.QuoteNone},
		{`"bob`, `"bob`, valuebox.QuoteNone},
		{`"`, `"`, valuebox.QuoteNone},
		{"", "", valuebox.QuoteNone},
	}

	for _, tt := range tests {
		text, quote := unquote(tt.in)
		assert.Equal(t, tt.text, text, tt.in)
		assert.Equal(t, tt.expected, quote, tt.in)
	}
}
