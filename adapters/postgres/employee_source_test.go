package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelectAllQuery(t *testing.T) {
	tests := []struct {
		table    string
		expected string
	}{
		{"employees", `SELECT * FROM "employees"`},
		{"hr.employees", `SELECT * FROM "hr"."employees"`},
		{`odd"name`, `SELECT * FROM "odd""name"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, selectAllQuery(tt.table))
	}
}

func TestCellString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"null", nil, ""},
		{"bytes", []byte("Sales"), "Sales"},
		{"string", "Male", "Male"},
		{"int", int64(5993), "5993"},
		{"float", 16.5, "16.5"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"time", ts, "2024-03-01T09:30:00Z"},
		{"other", int32(7), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cellString(tt.value))
		})
	}
}

func TestDescribe(t *testing.T) {
	src := NewEmployeeSource(nil, "hr.employees")
	assert.Equal(t, "postgres table hr.employees", src.Describe())
}
