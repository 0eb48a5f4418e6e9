package indicator

import (
	"errors"
	"testing"
)

func TestApplyOrderIndependent(t *testing.T) {
	f := testFrame(t, 80)

	a, err := Apply(f, []string{"change", "rsi", "obv"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	b, err := Apply(f, []string{"obv", "rsi", "change"})
	if err != nil {
		t.Fatalf("apply reversed: %v", err)
	}

	if len(a.ColumnNames()) != len(b.ColumnNames()) {
		t.Fatalf("column sets differ: %v vs %v", a.ColumnNames(), b.ColumnNames())
	}
	for _, name := range a.ColumnNames() {
		av, _ := a.Column(name)
		bv, err := b.Column(name)
		if err != nil {
			t.Fatalf("column %s missing after reorder", name)
		}
		if !sameValues(av, bv) {
			t.Fatalf("column %s differs across application order", name)
		}
	}
}

func TestAllMatchesIndividualRuns(t *testing.T) {
	f := testFrame(t, 80)
	suite, err := All(f)
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	single, err := RSI(f)
	if err != nil {
		t.Fatalf("rsi: %v", err)
	}
	for _, name := range []string{"rsi_7", "rsi_14"} {
		want, _ := single.Column(name)
		got, err := suite.Column(name)
		if err != nil {
			t.Fatalf("suite missing %s", name)
		}
		if !sameValues(got, want) {
			t.Fatalf("suite %s differs from individual run", name)
		}
	}
}

func TestCoreMembership(t *testing.T) {
	f := testFrame(t, 80)
	out, err := Core(f)
	if err != nil {
		t.Fatalf("core: %v", err)
	}
	for _, name := range []string{"ema_5", "macd", "rsi_14", "atr_14", "obv", "bb_middle_5"} {
		if !out.HasColumn(name) {
			t.Fatalf("core suite missing %s", name)
		}
	}
	// Core must not drag in the volume-flow extras.
	for _, name := range []string{"ad", "vwma_5", "volume_sma_5", "change_pct_1"} {
		if out.HasColumn(name) {
			t.Fatalf("core suite unexpectedly added %s", name)
		}
	}
}

func TestApplyRejectsUnknownNames(t *testing.T) {
	f := testFrame(t, 20)
	_, err := Apply(f, []string{"ema", "bogus", "rsi", "nope"})
	if err == nil {
		t.Fatalf("expected error for unknown names")
	}
	var unknown *UnknownIndicatorError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownIndicatorError, got %T", err)
	}
	if len(unknown.Names) != 2 || unknown.Names[0] != "bogus" || unknown.Names[1] != "nope" {
		t.Fatalf("unexpected unknown names %v", unknown.Names)
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != 14 {
		t.Fatalf("expected 14 indicators, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
