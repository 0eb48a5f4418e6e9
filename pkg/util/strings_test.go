package util

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"700.HK", []string{"700.HK"}},
		{"700.HK, AAPL.US ,TSLA.US", []string{"700.HK", "AAPL.US", "TSLA.US"}},
		{"a,,b,a", []string{"a", "b"}},
	}
	for _, c := range cases {
		if got := SplitList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeSymbols(t *testing.T) {
	got := NormalizeSymbols([]string{" 700.hk", "aapl.us "})
	want := []string{"700.HK", "AAPL.US"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
