package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Cents{
		"4.90":  490,
		"4,90":  490,
		"14.7":  1470,
		"0":     0,
		"500":   50000,
		"0.005": 1,
		" 2.5 ": 250,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("abc")
	assert.Error(t, err)
	_, err = Parse("")
	assert.Error(t, err)
}

func TestMulIsExact(t *testing.T) {
	price := MustParse("4.90")
	assert.Equal(t, Cents(1470), price.Mul(3))
	assert.Equal(t, "14.70", price.Mul(3).String())
}

func TestDivRound(t *testing.T) {
	assert.Equal(t, Cents(0), Cents(1000).DivRound(0))
	assert.Equal(t, Cents(333), Cents(1000).DivRound(3))
	assert.Equal(t, Cents(334), Cents(1001).DivRound(3))
	assert.Equal(t, Cents(250), Cents(500).DivRound(2))
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Total Cents `json:"total"`
	}{Total: 1470})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":14.70}`, string(b))

	var in struct {
		A Cents `json:"a"`
		B Cents `json:"b"`
		C Cents `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":4.9,"b":"12.34","c":null}`), &in))
	assert.Equal(t, Cents(490), in.A)
	assert.Equal(t, Cents(1234), in.B)
	assert.Equal(t, Cents(0), in.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &in))
}

func TestScan(t *testing.T) {
	var c Cents
	require.NoError(t, c.Scan(int64(1470)))
	assert.Equal(t, Cents(1470), c)
	require.NoError(t, c.Scan([]byte("990")))
	assert.Equal(t, Cents(990), c)
	require.NoError(t, c.Scan(nil))
	assert.Equal(t, Cents(0), c)
	assert.Error(t, c.Scan(true))
}
