package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Report summarizes a tolerant decode.
type Report struct {
	Total   int // elements seen
	Skipped int // elements that could not be decoded
}

// Lossy reports whether anything was dropped.
func (r Report) Lossy() bool {
	return r.Skipped > 0
}

// Attractions decodes the explorer output.
func Attractions(v any) ([]domain.Attraction, Report) {
	return decodeList[domain.Attraction](v)
}

// Foods decodes the foodie output.
func Foods(v any) ([]domain.Food, Report) {
	return decodeList[domain.Food](v)
}

// Itinerary decodes the guide output.
func Itinerary(v any) ([]domain.DayPlan, Report) {
	days, rep := decodeList[domain.DayPlan](v)
	for i := range days {
		if days[i].Activities == nil {
			days[i].Activities = []domain.Activity{}
		}
	}
	return days, rep
}

// Narration decodes the vlogger output. Non-string entries are re-encoded as JSON text.
func Narration(v any) ([]string, Report) {
	items, ok := asList(v)
	if !ok {
		return []string{}, nonList(v)
	}
	rep := Report{Total: len(items)}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		case nil:
			rep.Skipped++
		default:
			data, err := json.Marshal(s)
			if err != nil {
				rep.Skipped++
				continue
			}
			out = append(out, string(data))
		}
	}
	return out, rep
}

// Evaluation reads the evaluator output. A missing or null score is 0.
func Evaluation(v any) (score float64, improvements string, err error) {
	m, ok := asMap(v)
	if !ok {
		return 0, "", fmt.Errorf("%w: expected an object, got %T", ErrInvalidScore, v)
	}

	score, err = toFloat(m["score"])
	if err != nil {
		return 0, "", err
	}

	switch imp := m["improvements"].(type) {
	case nil:
	case string:
		improvements = imp
	default:
		improvements = fmt.Sprint(imp)
	}
	return score, improvements, nil
}

// toFloat coerces a score. NaN and infinities are rejected.
func toFloat(v any) (float64, error) {
	f, err := coerceFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: score %v is not finite", ErrInvalidScore, v)
	}
	return f, nil
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidScore, err)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: could not convert %q to float", ErrInvalidScore, n)
		}
		return f, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidScore, v)
	}
}

func decodeList[T any](v any) ([]T, Report) {
	items, ok := asList(v)
	if !ok {
		return []T{}, nonList(v)
	}
	rep := Report{Total: len(items)}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := decode(item, &t); err != nil {
			rep.Skipped++
			continue
		}
		out = append(out, t)
	}
	return out, rep
}

func decode(input, output any) error {
	if input == nil {
		return fmt.Errorf("nil element")
	}
	if k := reflect.TypeOf(input).Kind(); k != reflect.Map && k != reflect.Struct {
		return fmt.Errorf("expected an object, got %T", input)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func asList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil || reflect.TypeOf(v).Kind() != reflect.Map {
		return nil, false
	}
	var m map[string]any
	if err := mapstructure.Decode(v, &m); err != nil {
		return nil, false
	}
	return m, true
}

func nonList(v any) Report {
	if v == nil {
		return Report{}
	}
	return Report{Total: 1, Skipped: 1}
}
