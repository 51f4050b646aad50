package types

import (
	"slices"
	"testing"
)

func TestStringListScan(t *testing.T) {
	cases := []struct {
		name string
		src  any
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty bytes", []byte{}, []string{}},
		{"bytes", []byte(`["a1","travel"]`), []string{"a1", "travel"}},
		{"string", `["verbs"]`, []string{"verbs"}},
		{"json null", "null", []string{}},
	}
	for _, c := range cases {
		var l StringList
		if err := l.Scan(c.src); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !slices.Equal([]string(l), c.want) {
			t.Fatalf("%s: got %v want %v", c.name, l, c.want)
		}
	}

	var l StringList
	if err := l.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if err := l.Scan("{"); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("nil list: got %v, %v", v, err)
	}
	v, err = StringList{"a", "b"}.Value()
	if err != nil || v != `["a","b"]` {
		t.Fatalf("got %v, %v", v, err)
	}
}
