package budget

import "testing"

func TestPerUnitSubtractsOverheadFirst(t *testing.T) {
	per, err := PerUnit(10_000_000, 1_000, 1)
	if err != nil {
		t.Fatalf("PerUnit failed: %v", err)
	}
	if per != 9_999_000 {
		t.Fatalf("per-unit budget = %d, want 9999000", per)
	}
}

func TestPerUnitFloorsDivision(t *testing.T) {
	per, err := PerUnit(1_000, 0, 3)
	if err != nil {
		t.Fatalf("PerUnit failed: %v", err)
	}
	if per != 333 {
		t.Fatalf("per-unit budget = %d, want 333", per)
	}
	if per*3 > 1_000 {
		t.Fatalf("combined budget %d exceeds target", per*3)
	}
}

func TestPerUnitInsufficientBudget(t *testing.T) {
	_, err := PerUnit(100, 100, 1)
	if err == nil {
		t.Fatal("expected shortfall error")
	}
	if !IsInsufficient(err) {
		t.Fatalf("error not classified as insufficient budget: %v", err)
	}

	// One byte short of one byte per unit.
	if _, err := PerUnit(109, 100, 10); !IsInsufficient(err) {
		t.Fatalf("expected shortfall for 9 bytes across 10 units, got %v", err)
	}
	if _, err := PerUnit(110, 100, 10); err != nil {
		t.Fatalf("10 bytes across 10 units should fit, got %v", err)
	}
}

func TestPerUnitRejectsBadParameters(t *testing.T) {
	if _, err := PerUnit(0, 0, 1); err == nil {
		t.Fatal("expected error for zero target")
	}
	if _, err := PerUnit(100, -1, 1); err == nil {
		t.Fatal("expected error for negative overhead")
	}
	if _, err := PerUnit(100, 0, 0); err == nil {
		t.Fatal("expected error for zero count")
	}
	// Parameter errors are not budget shortfalls.
	_, err := PerUnit(100, 0, 0)
	if IsInsufficient(err) {
		t.Fatalf("parameter error misclassified as shortfall: %v", err)
	}
}

func TestLedgerTracksSpending(t *testing.T) {
	l := NewLedger(1_000)
	l.Spend(400)
	l.Spend(100)
	if l.Spent() != 500 {
		t.Fatalf("spent = %d, want 500", l.Spent())
	}
	if l.Remaining() != 500 {
		t.Fatalf("remaining = %d, want 500", l.Remaining())
	}
	if l.Exhausted(500) {
		t.Fatal("ledger exhausted too early")
	}
	if !l.Exhausted(501) {
		t.Fatal("ledger should be exhausted for units larger than the remainder")
	}
}
