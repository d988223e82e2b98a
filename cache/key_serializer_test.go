package cache

import "testing"

func TestSerializeKey(t *testing.T) {
	s := NewDefaultKeySerializer()

	tests := []struct {
		name   string
		method string
		args   []any
		want   string
	}{
		{
			name:   "method only",
			method: "Customers",
			want:   "Customers",
		},
		{
			name:   "string args",
			method: "GetByEmail",
			args:   []any{"ada@example.com"},
			want:   "GetByEmail::ada@example.com",
		},
		{
			name:   "mixed scalars",
			method: "Find",
			args:   []any{"active", 42, true},
			want:   "Find::active::42::true",
		},
		{
			name:   "nil arg",
			method: "Find",
			args:   []any{nil},
			want:   "Find::nil",
		},
		{
			name:   "string slice",
			method: "Find",
			args:   []any{[]string{"a", "b"}},
			want:   "Find::slice[2]:{a,b}",
		},
		{
			name:   "any slice recurses",
			method: "Find",
			args:   []any{[]any{"a", 1}},
			want:   "Find::slice[2]:{a,1}",
		},
		{
			name:   "map keys sorted",
			method: "Find",
			args:   []any{map[string]any{"b": 2, "a": 1}},
			want:   "Find::map[2]:{a=1,b=2}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SerializeKey(tt.method, tt.args...)
			if got != tt.want {
				t.Errorf("SerializeKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeKey_StructFallsBackToJSON(t *testing.T) {
	s := NewDefaultKeySerializer()

	type filter struct {
		Status string `json:"status"`
	}
	got := s.SerializeKey("Find", filter{Status: "active"})
	want := `Find::json:{"status":"active"}`
	if got != want {
		t.Errorf("SerializeKey() = %q, want %q", got, want)
	}
}

func TestSerializeKey_SameInputSameKey(t *testing.T) {
	s := NewDefaultKeySerializer()

	a := s.SerializeKey("Find", map[string]any{"x": 1, "y": 2, "z": 3})
	b := s.SerializeKey("Find", map[string]any{"z": 3, "y": 2, "x": 1})
	if a != b {
		t.Errorf("map serialization not stable: %q vs %q", a, b)
	}
}
