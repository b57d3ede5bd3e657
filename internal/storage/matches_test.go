package storage

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

func TestSaveMatchRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := core.MatchResult{
		Opponent: "hard",
		Winner:   1,
		Outcome:  core.OutcomeWin,
		Moves:    17,
		Score:    300,
	}
	id, err := store.SaveMatch("connect-four", in)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveMatch() returned a non-uuid id %q: %v", id, err)
	}

	got, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}
	if got.GameID != "connect-four" || got.Opponent != "hard" || got.Winner != 1 ||
		got.Outcome != core.OutcomeWin || got.Moves != 17 || got.Score != 300 {
		t.Errorf("Round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be parsed")
	}
}

func TestMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		got, err := store.MatchByID(id)
		if err != nil {
			t.Fatalf("MatchByID(%q) failed: %v", id, err)
		}
		if got != nil {
			t.Errorf("MatchByID(%q) = %+v, want nil", id, got)
		}
	}
}

func TestRecentMatchesNewestFirst(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for moves := range 5 {
		id, err := store.SaveMatch("connect-four", core.MatchResult{
			Opponent: "medium",
			Outcome:  core.OutcomeDraw,
			Moves:    moves,
		})
		if err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := store.RecentMatches("connect-four", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(recent))
	}
	for i, m := range recent {
		if want := ids[len(ids)-1-i]; m.MatchID != want {
			t.Errorf("recent[%d] = %s, want %s", i, m.MatchID, want)
		}
	}

	if other, _ := store.RecentMatches("tetris", 10); len(other) != 0 {
		t.Errorf("Expected no tetris matches, got %d", len(other))
	}
}

func TestMatchTallies(t *testing.T) {
	store := openTestStore(t)

	results := []core.MatchResult{
		{Opponent: "easy", Outcome: core.OutcomeWin},
		{Opponent: "easy", Outcome: core.OutcomeWin},
		{Opponent: "easy", Outcome: core.OutcomeLoss},
		{Opponent: "expert", Outcome: core.OutcomeLoss},
		{Opponent: "expert", Outcome: core.OutcomeDraw},
	}
	for _, r := range results {
		if _, err := store.SaveMatch("connect-four", r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	tallies, err := store.MatchTallies("connect-four")
	if err != nil {
		t.Fatalf("MatchTallies() failed: %v", err)
	}

	want := []MatchTally{
		{Opponent: "easy", Wins: 2, Losses: 1},
		{Opponent: "expert", Losses: 1, Draws: 1},
	}
	if len(tallies) != len(want) {
		t.Fatalf("Expected %d tallies, got %d: %+v", len(want), len(tallies), tallies)
	}
	for i := range want {
		if tallies[i] != want[i] {
			t.Errorf("tallies[%d] = %+v, want %+v", i, tallies[i], want[i])
		}
	}
	if tallies[0].Played() != 3 {
		t.Errorf("Expected 3 rounds against easy, got %d", tallies[0].Played())
	}
}
