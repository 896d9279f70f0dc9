package game

import "testing"

func TestOngoingRanksAreConsecutive(t *testing.T) {
	s := scoreboard{"alice": 10, "bob": 10, "carol": 7}

	entries := s.ongoing()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("entry %d: expected rank %d, got %d", i, i+1, e.Rank)
		}
	}
	if entries[2].Username != "carol" || entries[2].Score != 7 {
		t.Fatalf("expected carol last with 7, got %+v", entries[2])
	}
}

func TestFinalRanksShareTies(t *testing.T) {
	s := scoreboard{"alice": 10, "bob": 10, "carol": 7}

	entries := s.final()
	want := []string{"1st", "1st", "3rd"}
	for i, e := range entries {
		if e.Rank != want[i] {
			t.Fatalf("entry %d: expected rank %s, got %s", i, want[i], e.Rank)
		}
	}
}

func TestOrdinalSuffixIsSimplified(t *testing.T) {
	cases := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "th"}
	for rank, want := range cases {
		if got := ordinalSuffix(rank); got != want {
			t.Fatalf("rank %d: expected %q, got %q", rank, want, got)
		}
	}
}

func TestRenderEmptyScoreboards(t *testing.T) {
	s := scoreboard{}
	if got := s.renderOngoing(); got != "Scoreboard is Empty" {
		t.Fatalf("unexpected ongoing render %q", got)
	}
	if got := s.renderFinal(); got != "Final Scoreboard is Empty" {
		t.Fatalf("unexpected final render %q", got)
	}
}
