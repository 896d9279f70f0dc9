package game

import (
	"fmt"
	"sort"
	"strings"

	"multiplayer-quiz/internal/domain"
)

// scoreboard maps usernames to their cumulative session score. Guarded by
// the owning Game's mutex; the read-side computations below are pure.
type scoreboard map[string]int

// sorted returns entries by descending score, ties broken by username so
// output is deterministic.
func (s scoreboard) sorted() []domain.Standing {
	entries := make([]domain.Standing, 0, len(s))
	for username, score := range s {
		entries = append(entries, domain.Standing{Username: username, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Username < entries[j].Username
	})
	return entries
}

// ongoing ranks by position in sorted order; tied scores get consecutive
// numeric ranks.
func (s scoreboard) ongoing() []domain.Standing {
	entries := s.sorted()
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// final shares ranks between ties: the rank only advances when the score
// strictly drops below the previous entry's.
func (s scoreboard) final() []domain.FinalStanding {
	entries := s.sorted()
	out := make([]domain.FinalStanding, 0, len(entries))

	rank := 1
	lastScore := -1
	for i, e := range entries {
		if i > 0 && e.Score < lastScore {
			rank = i + 1
		}
		lastScore = e.Score
		out = append(out, domain.FinalStanding{
			Rank:     fmt.Sprintf("%d%s", rank, ordinalSuffix(rank)),
			Username: e.Username,
			Score:    e.Score,
		})
	}
	return out
}

// ordinalSuffix only maps 1..3; there is no 11th/12th/13th special case,
// so 21 renders as "21th".
func ordinalSuffix(rank int) string {
	switch rank {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func (s scoreboard) renderOngoing() string {
	if len(s) == 0 {
		return "Scoreboard is Empty"
	}
	lines := make([]string, 0, len(s))
	for _, e := range s.ongoing() {
		lines = append(lines, fmt.Sprintf("%d. %s : %d Point", e.Rank, e.Username, e.Score))
	}
	return strings.Join(lines, "\n")
}

func (s scoreboard) renderFinal() string {
	if len(s) == 0 {
		return "Final Scoreboard is Empty"
	}
	lines := make([]string, 0, len(s))
	for _, e := range s.final() {
		lines = append(lines, fmt.Sprintf("%s %s : %d Point", e.Rank, e.Username, e.Score))
	}
	return "\n--- FINAL SCOREBOARD ---\n" + strings.Join(lines, "\n")
}
