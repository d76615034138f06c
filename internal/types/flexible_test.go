package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntDecoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"Number", `7`, 7},
		{"Numeric string", `"7"`, 7},
		{"Float string", `"3.0"`, 3},
		{"Null", `null`, 0},
		{"Empty string", `""`, 0},
		{"Garbage", `"plenty"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, f.Int())
		})
	}
}

func TestFlexFloatDecoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Number", `29.99`, 29.99},
		{"String", `"29.99"`, 29.99},
		{"Integer string", `"45000"`, 45000},
		{"Null", `null`, 0},
		{"Garbage", `"n/a"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, f.Float64())
		})
	}
}

func TestFlexBoolDecoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Bool true", `true`, true},
		{"Bool false", `false`, false},
		{"Number one", `1`, true},
		{"Number zero", `0`, false},
		{"String one", `"1"`, true},
		{"String true", `"true"`, true},
		{"String TRUE", `"TRUE"`, true},
		{"String zero", `"0"`, false},
		{"Null", `null`, false},
		{"Garbage", `"yes"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexBool
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, f.Bool())
		})
	}
}

func TestFlexTimeDecoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"RFC3339", `"2025-03-01T12:00:00Z"`, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"No zone", `"2025-03-01T12:00:00"`, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"Space separator", `"2025-03-01 12:00:00"`, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"Date only", `"2025-03-01"`, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Null", `null`, time.Time{}},
		{"Garbage", `"soon"`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexTime
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.True(t, f.Time.Equal(tt.expected), "got %v want %v", f.Time, tt.expected)
		})
	}
}

func TestFlexTimePtr(t *testing.T) {
	var zero FlexTime
	assert.Nil(t, zero.Ptr())

	set := FlexTime{Time: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NotNil(t, set.Ptr())
	assert.Equal(t, set.Time, *set.Ptr())
}

func TestProductQueryValues(t *testing.T) {
	v := ProductQuery{}.Values()
	assert.Empty(t, v)

	v = ProductQuery{Page: 2, Limit: 50, Type: "flash", Search: "tote", MinPrice: 1000}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "50", v.Get("limit"))
	assert.Equal(t, "flash", v.Get("type"))
	assert.Equal(t, "tote", v.Get("search"))
	assert.Equal(t, "1000", v.Get("min_price"))
	assert.Empty(t, v.Get("max_price"))
}
