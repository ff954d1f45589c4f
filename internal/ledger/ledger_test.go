package ledger

import "testing"

func TestLedger_ShouldNotifyUnseenIdentity(t *testing.T) {
	l := New()
	if !l.ShouldNotify("2026-09-05 10:30 @ 510 GUADALUPE ST, AUSTIN 78701") {
		t.Error("ShouldNotify() = false for an unseen identity")
	}
	if l.Size() != 0 {
		t.Errorf("Size() = %d after a pure read, want 0", l.Size())
	}
}

func TestLedger_MarkNotifiedSuppressesRepeats(t *testing.T) {
	l := New()
	id := "2026-09-05 10:30 @ 510 GUADALUPE ST, AUSTIN 78701"

	l.MarkNotified(id)

	if l.ShouldNotify(id) {
		t.Error("ShouldNotify() = true for an already-notified identity")
	}
	if l.Size() != 1 {
		t.Errorf("Size() = %d, want 1", l.Size())
	}

	// marking again is idempotent
	l.MarkNotified(id)
	if l.Size() != 1 {
		t.Errorf("Size() = %d after duplicate mark, want 1", l.Size())
	}
}

func TestLedger_IdentitiesAreIndependent(t *testing.T) {
	l := New()
	l.MarkNotified("2026-09-05 10:30 @ 510 GUADALUPE ST, AUSTIN 78701")

	// same time, different location
	other := "2026-09-05 10:30 @ 3903 S CONGRESS AVE, AUSTIN 78704"
	if !l.ShouldNotify(other) {
		t.Error("ShouldNotify() = false for a distinct identity")
	}
}
