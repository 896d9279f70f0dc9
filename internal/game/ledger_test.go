package game

import (
	"testing"

	"multiplayer-quiz/internal/domain"
)

func TestLedgerOrderMatchesSet(t *testing.T) {
	l := newLedger()
	l.record("alice", domain.ChoiceA)
	l.record("bob", domain.ChoiceB)
	l.record("alice", domain.ChoiceC) // duplicate, ignored

	if len(l.order) != l.count() {
		t.Fatalf("order length %d != answered set size %d", len(l.order), l.count())
	}
	if l.count() != 2 {
		t.Fatalf("expected 2 answers, got %d", l.count())
	}
	if l.submitted["alice"] != domain.ChoiceA {
		t.Fatalf("duplicate overwrote alice's answer: %v", l.submitted["alice"])
	}
	if l.order[0] != "alice" || l.order[1] != "bob" {
		t.Fatalf("unexpected order %v", l.order)
	}
}

func TestLedgerRemoveWithdrawsAnswer(t *testing.T) {
	l := newLedger()
	l.record("alice", domain.ChoiceA)
	l.record("bob", domain.ChoiceB)
	l.record("carol", domain.ChoiceC)

	l.remove("bob")

	if l.count() != 2 {
		t.Fatalf("expected 2 after removal, got %d", l.count())
	}
	if len(l.order) != 2 || l.order[0] != "alice" || l.order[1] != "carol" {
		t.Fatalf("unexpected order after removal %v", l.order)
	}
	if _, ok := l.submitted["bob"]; ok {
		t.Fatalf("removed player's answer still recorded")
	}
	l.remove("bob") // second removal is a no-op
	if l.count() != 2 {
		t.Fatalf("repeated removal mutated ledger")
	}
}

func TestLedgerReset(t *testing.T) {
	l := newLedger()
	l.record("alice", domain.ChoiceA)
	l.reset()

	if l.count() != 0 || len(l.order) != 0 || len(l.submitted) != 0 {
		t.Fatalf("reset left state behind: %+v", l)
	}
}
