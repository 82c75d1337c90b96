// internal/domain/homework/response.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

// Field names of the homework status API.
const (
	FieldHomeworks    = "homeworks"
	FieldCurrentDate  = "current_date"
	FieldHomeworkName = "homework_name"
	FieldStatus       = "status"
)

// Batch is a validated API answer.
type Batch struct {
	Homeworks      []map[string]any // newest first, as returned by the API
	CurrentDate    int64
	HasCurrentDate bool
}

// CheckResponse validates the decoded JSON body and extracts the homework list.
// An absent or empty list yields ErrEmptyResult; any other deviation is a *ShapeError.
func CheckResponse(body any) (*Batch, error) {
	answer, ok := body.(map[string]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("expected a JSON object, got %T", body)}
	}

	raw, present := answer[FieldHomeworks]
	if !present || raw == nil {
		return nil, ErrEmptyResult
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("homeworks is not a list, got %T", raw)}
	}
	if len(list) == 0 {
		return nil, ErrEmptyResult
	}

	batch := &Batch{Homeworks: make([]map[string]any, 0, len(list))}
	for i, item := range list {
		hw, ok := item.(map[string]any)
		if !ok {
			return nil, &ShapeError{Reason: fmt.Sprintf("homeworks[%d] is not an object, got %T", i, item)}
		}
		batch.Homeworks = append(batch.Homeworks, hw)
	}

	if raw, present := answer[FieldCurrentDate]; present && raw != nil {
		date, err := toInt64(raw)
		if err != nil {
			return nil, &ShapeError{Reason: "current_date is not an integer", Err: err}
		}
		batch.CurrentDate = date
		batch.HasCurrentDate = true
	}
	return batch, nil
}

// toInt64 accepts the numeric shapes encoding/json may produce.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(n)
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	return int64(f), nil
}
