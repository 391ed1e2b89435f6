package runtimeid

import "testing"

func TestAcquireRejectsDuplicate(t *testing.T) {
	tok, err := Acquire(0xA5A5)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	defer tok.Release()

	if _, err := Acquire(0xA5A5); err == nil {
		t.Fatal("expected second Acquire of the same id to fail")
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	const id = 0xC0FFEE
	tok, err := Acquire(id)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	before := activeCount()

	tok.Release()
	if activeCount() != before-1 {
		t.Fatalf("expected active count to drop by 1, got %d -> %d", before, activeCount())
	}

	tok2, err := Acquire(id)
	if err != nil {
		t.Fatalf("expected Acquire to succeed after Release, got: %v", err)
	}
	tok2.Release()
}

func TestReleaseIsIdempotent(t *testing.T) {
	tok, err := Acquire(0xDEAD)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	tok.Release()
	tok.Release() // must not panic or double-delete someone else's entry
}
