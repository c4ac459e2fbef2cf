package session

import "testing"

func TestMessageIndex(t *testing.T) {
	t.Run("register_and_consume", func(t *testing.T) {
		index := NewMessageIndex()
		index.Register(1, 10, "tx-a")

		id, ok := index.Consume(1, 10)
		if !ok || id != "tx-a" {
			t.Fatalf("expected tx-a, got %q ok=%v", id, ok)
		}

		// Consuming removes both directions.
		if _, ok := index.Consume(1, 10); ok {
			t.Error("expected link gone after consume")
		}
	})

	t.Run("reregister_moves_link", func(t *testing.T) {
		index := NewMessageIndex()
		index.Register(1, 10, "tx-a")
		index.Register(1, 11, "tx-a")

		if _, ok := index.Lookup(1, 10); ok {
			t.Error("expected old message unlinked")
		}
		if id, ok := index.Lookup(1, 11); !ok || id != "tx-a" {
			t.Errorf("expected new message linked, got %q ok=%v", id, ok)
		}
	})

	t.Run("clear_transaction", func(t *testing.T) {
		index := NewMessageIndex()
		index.Register(2, 20, "tx-b")
		index.ClearTransaction("tx-b")

		if _, ok := index.Lookup(2, 20); ok {
			t.Error("expected link cleared")
		}
	})
}

func TestPendingReceipts(t *testing.T) {
	store := NewPendingReceipts()

	if store.Get(5) != nil {
		t.Fatal("expected empty store")
	}

	store.Set(5, &PendingReceipt{Stage: StageAwaitingConfirmation})
	if got := store.Get(5); got == nil || got.Stage != StageAwaitingConfirmation {
		t.Fatalf("expected stored receipt, got %v", got)
	}

	// A second Set replaces the first.
	store.Set(5, &PendingReceipt{Stage: StageAwaitingCorrection})
	if got := store.Get(5); got == nil || got.Stage != StageAwaitingCorrection {
		t.Fatalf("expected replaced receipt, got %v", got)
	}

	store.Delete(5)
	if store.Get(5) != nil {
		t.Error("expected receipt deleted")
	}
}
