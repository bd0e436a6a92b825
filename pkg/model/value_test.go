// pkg/model/value_test.go
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected Value
	}{
		{
			name:     "nil becomes the null marker",
			input:    nil,
			expected: Null(),
		},
		{
			name:     "string passes through",
			input:    "alice@example.com",
			expected: String("alice@example.com"),
		},
		{
			name:     "number passes through",
			input:    float64(52000.75),
			expected: Float(52000.75),
		},
		{
			name:     "bool passes through",
			input:    true,
			expected: Bool(true),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, FromJSON(tc.input).Equal(tc.expected))
		})
	}
}

func TestIsMissing(t *testing.T) {
	assert.True(t, Null().IsMissing())
	assert.True(t, String("").IsMissing())
	assert.False(t, String(" ").IsMissing())
	assert.False(t, Float(0).IsMissing())
	assert.False(t, Bool(false).IsMissing())
}

func TestNullDistinctFromEmptyString(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.False(t, String("").IsNull())
	assert.False(t, Null().Equal(String("")))
}

func TestAsFloat(t *testing.T) {
	testCases := []struct {
		name     string
		input    Value
		expected float64
		wantErr  bool
	}{
		{name: "float value", input: Float(42.5), expected: 42.5},
		{name: "numeric string", input: String("52000.75"), expected: 52000.75},
		{name: "string with whitespace", input: String(" 1200 "), expected: 1200},
		{name: "bool true", input: Bool(true), expected: 1},
		{name: "null", input: Null(), wantErr: true},
		{name: "empty string", input: String(""), wantErr: true},
		{name: "non-numeric string", input: String("fifty grand"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.input.AsFloat()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", Null().AsString())
	assert.Equal(t, "120000", Float(120000).AsString())
	assert.Equal(t, "0.35", Float(0.35).AsString())
	assert.Equal(t, "true", Bool(true).AsString())

	dob := time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2020-05-01", Date(dob).AsString())
}

func TestAsDate(t *testing.T) {
	dob := time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC)

	got, ok := Date(dob).AsDate()
	require.True(t, ok)
	assert.True(t, got.Equal(dob))

	_, ok = String("1990-01-15").AsDate()
	assert.False(t, ok)
}
