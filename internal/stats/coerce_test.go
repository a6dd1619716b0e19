package stats

import (
	"encoding/json"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name        string
		input       []any
		want        []float64
		wantDropped int
	}{
		{"empty", nil, []float64{}, 0},
		{"floats", []any{1.5, 2.5}, []float64{1.5, 2.5}, 0},
		{"ints", []any{1, int64(2), int32(3)}, []float64{1, 2, 3}, 0},
		{"numeric_strings", []any{"10", "-3.25", "+7"}, []float64{10, -3.25, 7}, 0},
		{"whitespace_trimmed", []any{" 42 "}, []float64{42}, 0},
		{"json_number", []any{json.Number("12.5")}, []float64{12.5}, 0},
		{"mixed_drops_non_numeric", []any{"abc", nil, "", 5, "6"}, []float64{5, 6}, 3},
		{"rejects_exponent", []any{"1e3"}, []float64{}, 1},
		{"rejects_bare_dot", []any{".5", "5."}, []float64{}, 2},
		{"rejects_double_dot", []any{"1.2.3"}, []float64{}, 1},
		{"rejects_bool", []any{true}, []float64{}, 1},
		{"preserves_order", []any{"3", "1", "2"}, []float64{3, 1, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := Coerce(tt.input)
			if dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", dropped, tt.wantDropped)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Coerce(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if !approxEqual(got[i], tt.want[i]) {
					t.Errorf("value[%d] = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCoerceAllNonNumericThenDescribe(t *testing.T) {
	values, dropped := Coerce([]any{"abc", nil, "", "x1"})
	if dropped != 4 || len(values) != 0 {
		t.Fatalf("Coerce = (%v, %d), want (empty, 4)", values, dropped)
	}
	if _, err := Describe(values, false); err != ErrNoNumericData {
		t.Errorf("Describe on empty coerced set: err = %v, want ErrNoNumericData", err)
	}
}
