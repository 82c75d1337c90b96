package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestCheckResponse_Valid(t *testing.T) {
	body := decode(t, `{"homeworks":[{"homework_name":"A","status":"rejected"},{"homework_name":"B","status":"approved"}],"current_date":200}`)

	batch, err := CheckResponse(body)
	require.NoError(t, err)
	require.Len(t, batch.Homeworks, 2)
	assert.Equal(t, "A", batch.Homeworks[0]["homework_name"])
	assert.True(t, batch.HasCurrentDate)
	assert.Equal(t, int64(200), batch.CurrentDate)
}

func TestCheckResponse_Empty(t *testing.T) {
	for _, raw := range []string{
		`{"homeworks":[],"current_date":100}`,
		`{"current_date":100}`,
		`{"homeworks":null}`,
		`{"homeworks":[],"current_date":"x"}`,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := CheckResponse(decode(t, raw))
			assert.ErrorIs(t, err, ErrEmptyResult)
		})
	}
}

func TestCheckResponse_Malformed(t *testing.T) {
	for _, raw := range []string{
		`[]`,
		`"homeworks"`,
		`{"homeworks":{"homework_name":"A"}}`,
		`{"homeworks":["A"]}`,
		`{"homeworks":[{"homework_name":"A","status":"approved"}],"current_date":"yesterday"}`,
		`{"homeworks":[{"homework_name":"A","status":"approved"}],"current_date":1.5}`,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := CheckResponse(decode(t, raw))
			var shape *ShapeError
			assert.True(t, errors.As(err, &shape), "got %v", err)
			assert.False(t, errors.Is(err, ErrEmptyResult))
		})
	}
}

func TestCheckResponse_MissingCurrentDate(t *testing.T) {
	batch, err := CheckResponse(decode(t, `{"homeworks":[{"homework_name":"A","status":"approved"}]}`))
	require.NoError(t, err)
	assert.False(t, batch.HasCurrentDate)
}

func TestCheckResponse_PlainFloatDate(t *testing.T) {
	// Bodies decoded without UseNumber carry float64 numbers.
	var body any
	require.NoError(t, json.Unmarshal([]byte(`{"homeworks":[{"homework_name":"A","status":"approved"}],"current_date":1700000000}`), &body))

	batch, err := CheckResponse(body)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), batch.CurrentDate)
}

func TestReportState(t *testing.T) {
	s := NewReportState()
	assert.True(t, s.Changed("A", "m1"))

	s.Commit("A", "m1")
	assert.False(t, s.Changed("A", "m1"))
	assert.True(t, s.Changed("A", "m2"))
	assert.True(t, s.Changed("B", "m1"))

	assert.True(t, s.ErrorChanged("boom"))
	s.CommitError("boom")
	assert.False(t, s.ErrorChanged("boom"))
	s.ClearError()
	assert.True(t, s.ErrorChanged("boom"))
}
