package bigint

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0", Int{}.String())
	assert.Equal(t, "0", MustParse("-000").String())
	assert.Equal(t, "-1", MustParse("-1").String())
	assert.Equal(t, "1000", MustParse("0001000").String())
}

func TestFormat(t *testing.T) {
	t.Parallel()
	x := MustParse("-42")
	y := MustParse("42")
	tests := []struct {
		format string
		arg    Int
		want   string
	}{
		{"%v", x, "-42"},
		{"%s", x, "-42"},
		{"%d", y, "42"},
		{"%6d", x, "   -42"},
		{"%-6d|", x, "-42   |"},
		{"%06d", x, "-00042"},
		{"%+d", y, "+42"},
		{"% d", y, " 42"},
		{"%2d", x, "-42"},
		{"%x", y, "%!x(bigint.Int=42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fmt.Sprintf(tt.format, tt.arg), "format %q", tt.format)
	}
	assert.Equal(t, "42", fmt.Sprint(&y))
}

func TestScan(t *testing.T) {
	t.Parallel()
	var a, b Int
	n, err := fmt.Sscan("  123\n\t-456  ", &a, &b)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "123", a.String())
	assert.Equal(t, "-456", b.String())
}

func TestScanMalformed(t *testing.T) {
	t.Parallel()
	var a Int
	_, err := fmt.Sscan("12x4", &a)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Offset)
	assert.True(t, a.IsZero(), "receiver must be unchanged on error")
}

func TestReadEndOfInput(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "   ", "\n\n"} {
		_, err := Read(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrEndOfInput, "input %q", in)
		assert.ErrorIs(t, err, io.EOF, "input %q", in)
	}
}

func TestReadSequence(t *testing.T) {
	t.Parallel()
	r := bufio.NewReader(strings.NewReader("1 -2\n30000000000000000000000\n"))
	var got []string
	for {
		x, err := Read(r)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, x.String())
	}
	assert.Equal(t, []string{"1", "-2", "30000000000000000000000"}, got)
}

func TestWriteTo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n, err := MustParse("-0012").WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "-12", buf.String())
}

func TestTextMarshaling(t *testing.T) {
	t.Parallel()
	type payload struct {
		Value Int `json:"value"`
	}
	data, err := json.Marshal(payload{Value: MustParse("-98765432109876543210")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"-98765432109876543210"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "-98765432109876543210", p.Value.String())

	assert.Error(t, json.Unmarshal([]byte(`{"value":"12.5"}`), &p))
}
