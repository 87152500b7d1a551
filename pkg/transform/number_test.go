package transform

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

func descriptor(t *testing.T, format string, scale string, sign string) Descriptor {
	t.Helper()
	d, err := NewDescriptor(format, "", scale, sign)
	require.NoError(t, err)
	return d
}

func parse(t *testing.T, format, raw string) (Value, error) {
	t.Helper()
	return Default().Parse(raw, descriptor(t, format, "", ""))
}

func TestNewDescriptor(t *testing.T) {
	d, err := NewDescriptor("ixt:num-dot-decimal", "-3", "6", "-")
	require.NoError(t, err)
	assert.Equal(t, "ixt", d.Namespace)
	assert.Equal(t, "num-dot-decimal", d.Name)
	require.NotNil(t, d.Decimals)
	assert.Equal(t, -3, *d.Decimals)
	assert.Equal(t, 6, d.Scale)
	assert.True(t, d.Negative())
	assert.Equal(t, "ixt:num-dot-decimal", d.Format())

	d, err = NewDescriptor("numdotdecimal", "INF", "", "")
	require.NoError(t, err)
	assert.Equal(t, "", d.Namespace)
	assert.Nil(t, d.Decimals)

	d, err = NewDescriptor("", "", "", "")
	require.NoError(t, err)
	require.NotNil(t, d.Decimals)
	assert.Equal(t, 0, *d.Decimals)
	assert.Equal(t, 0, d.Scale)

	_, err = NewDescriptor("", "", "three", "")
	assert.Error(t, err)
	_, err = NewDescriptor("", "two", "", "")
	assert.Error(t, err)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "numdotdecimal", CanonicalName("ixt:num-dot-decimal"))
	assert.Equal(t, "numdotdecimal", CanonicalName("numdotdecimal"))
	assert.Equal(t, "datedaymonthnameyearde", CanonicalName("ixt4:Date-Day-MonthName-Year-DE"))
}

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"007.50", "7.5", true},
		{"000", "0", true},
		{".5", "0.5", true},
		{"-12.300", "-12.3", true},
		{"-0.000", "0", true},
		{"+4", "4", true},
		{"1.2.3", "", false},
		{"", "", false},
		{"12a", "", false},
	}
	for _, tt := range tests {
		got, ok := canonicalNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestBaseParser(t *testing.T) {
	tests := []struct {
		raw   string
		scale string
		sign  string
		want  float64
	}{
		{"1,234", "", "", 1234},
		{" 1 234.5 ", "", "", 1234.5},
		{"", "", "", 0},
		{"-", "", "", 0},
		{"1234", "3", "-", -1234000},
		{"12", "-2", "", 0.12},
	}
	for _, tt := range tests {
		v, err := Default().Parse(tt.raw, descriptor(t, "", tt.scale, tt.sign))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, KindNumber, v.Kind)
		assert.InDelta(t, tt.want, v.Number, 1e-9, tt.raw)
	}

	_, err := Default().Parse("abc", descriptor(t, "", "", ""))
	assert.ErrorIs(t, err, xbrlerr.ErrConversion)
}

func TestSeparatorParsers(t *testing.T) {
	tests := []struct {
		format string
		raw    string
		want   float64
	}{
		{"ixt:numdotdecimal", "235,100,356.79", 235100356.79},
		{"ixt:num-dot-decimal", "1,234", 1234},
		{"ixt:num-dot-decimal", "100", 100},
		{"ixt:num-dot-decimal", "1 234.5", 1234.5},
		{"ixt:num-dot-decimal", "1 234", 1234},
		{"ixt:num-dot-decimal", "１２３", 123},
		{"ixt:num-dot-decimal", "-", 0},
		{"ixt:num-dot-decimal", "", 0},
		{"ixt:numcommadot", "1,000,000", 1000000},
		{"ixt:numdotdecimalin", "1,00,000.50", 100000.5},
		{"ixt:numcommadecimal", "235.100.345,79", 235100345.79},
		{"ixt:num-comma-decimal", "85.123", 85123},
		{"ixt:num-comma-decimal", "0", 0},
		{"ixt:num-comma-decimal", "1234,56", 1234.56},
		{"ixt:numdotcomma", "1.234", 1234},
		{"ixt:num-dot-decimal-apos", "1'234'567.89", 1234567.89},
		{"ixt:num-comma-decimal-apos", "1’234,5", 1234.5},
	}
	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.raw, func(t *testing.T) {
			v, err := parse(t, tt.format, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, KindNumber, v.Kind)
			assert.InDelta(t, tt.want, v.Number, 1e-9)
		})
	}
}

func TestSeparatorParsersReject(t *testing.T) {
	for _, tt := range []struct{ format, raw string }{
		{"ixt:num-dot-decimal", "1.234,5"},
		{"ixt:num-dot-decimal", "abc"},
		{"ixt:num-dot-decimal", "1'234"},
		{"ixt:num-comma-decimal", "blurdy-burg"},
		{"ixt:num-comma-decimal", "1,234,5"},
	} {
		_, err := parse(t, tt.format, tt.raw)
		var conv *xbrlerr.ConversionError
		require.ErrorAs(t, err, &conv, tt.raw)
		assert.Equal(t, tt.raw, conv.Value)
		assert.Equal(t, tt.format, conv.Format)
	}
}

func TestUnitDecimal(t *testing.T) {
	v, err := parse(t, "ixt:num-unit-decimal", "1,234 dollars 56 cents")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, v.Number, 1e-9)

	v, err = parse(t, "ixt:numunitdecimal", "5 Euro 5")
	require.NoError(t, err)
	assert.InDelta(t, 5.05, v.Number, 1e-9)

	v, err = parse(t, "ixt:num-unit-decimal-apos", "1'000 francs 50")
	require.NoError(t, err)
	assert.InDelta(t, 1000.5, v.Number, 1e-9)

	_, err = parse(t, "ixt:num-unit-decimal", "100 yen")
	assert.ErrorIs(t, err, xbrlerr.ErrConversion)
}

func TestWords(t *testing.T) {
	tests := map[string]float64{
		"no":                           0,
		"None":                         0,
		"eighty-five":                  85,
		"one hundred and twenty-three": 123,
		"two thousand":                 2000,
		"three million, four hundred":  3000400,
		"Twelve":                       12,
	}
	for raw, want := range tests {
		v, err := parse(t, "ixt-sec:numwordsen", raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, v.Number, raw)
	}

	for _, raw := range []string{"blurdy-burg", "", "and"} {
		_, err := parse(t, "ixt-sec:numwordsen", raw)
		assert.ErrorIs(t, err, xbrlerr.ErrConversion, raw)
	}
}

func TestFixedParsersIgnoreInput(t *testing.T) {
	tests := []struct {
		format string
		want   Value
	}{
		{"ixt:zerodash", NumberValue(0)},
		{"ixt:fixed-zero", NumberValue(0)},
		{"ixt:numdash", NumberValue(0)},
		{"ixt:nocontent", NullValue()},
		{"ixt:fixed-empty", NullValue()},
		{"ixt:booleanfalse", BoolValue(false)},
		{"ixt:fixed-false", BoolValue(false)},
		{"ixt:booleantrue", BoolValue(true)},
		{"ixt:fixed-true", BoolValue(true)},
	}
	for _, tt := range tests {
		for _, raw := range []string{"", "-", "anything", "1,234", "true"} {
			v, err := Default().Parse(raw, descriptor(t, tt.format, "3", "-"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v, "%s(%q)", tt.format, raw)
		}
	}
}

func TestScaleAndSign(t *testing.T) {
	inputs := []struct{ format, raw string }{
		{"", "1234"},
		{"ixt:num-dot-decimal", "1,234.5"},
		{"ixt:num-comma-decimal", "1.234,5"},
		{"ixt:num-unit-decimal", "12 dollars 34"},
		{"ixt-sec:numwordsen", "eighty-five"},
	}
	for _, in := range inputs {
		for _, scale := range []int{0, 1, 3, 6, -2} {
			s := strconv.Itoa(scale)
			plain, err := Default().Parse(in.raw, descriptor(t, in.format, "", ""))
			require.NoError(t, err)
			pos, err := Default().Parse(in.raw, descriptor(t, in.format, s, ""))
			require.NoError(t, err)
			neg, err := Default().Parse(in.raw, descriptor(t, in.format, s, "-"))
			require.NoError(t, err)

			assert.Equal(t, -pos.Number, neg.Number, "%s %q scale %d", in.format, in.raw, scale)
			assert.Equal(t, plain.Number*math.Pow10(scale), pos.Number, "%s %q scale %d", in.format, in.raw, scale)
		}
	}
}
