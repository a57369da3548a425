package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	emp := Employee{ID: 1, Name: "Ada", DateOfJoining: NewDate(2023, time.March, 5)}

	raw, err := json.Marshal(emp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date_of_joining":"2023-03-05"`)

	var decoded Employee
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.DateOfJoining.Equal(emp.DateOfJoining.Time))
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	t.Parallel()

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"05/03/2023"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2023-02-30"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20230305`), &d))
}

func TestDate_Scan(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan(time.Date(2022, time.December, 31, 15, 4, 5, 0, time.FixedZone("x", 3600))))
	assert.Equal(t, "2022-12-31", d.String())

	require.NoError(t, d.Scan("2020-01-02"))
	assert.Equal(t, "2020-01-02", d.String())

	assert.Error(t, d.Scan(42))
}
