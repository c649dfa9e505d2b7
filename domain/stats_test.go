package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func testClanStats() *ClanStats {
	alice := PlayerTag("#ALICE")
	bob := PlayerTag("#BOB")

	stats := NewClanStats()
	stats.PlayerNames[alice] = "Alice"

	stats.CWL.Wars = []CwlWarStats{
		{Members: map[PlayerTag]*MemberWarStats{
			alice: {Attacks: []WarAttack{{Stars: 3, Destruction: 100, Duration: 90}, {Stars: 2, Destruction: 70, Duration: 120}}},
			bob:   {Attacks: []WarAttack{{Stars: 3, Destruction: 100, Duration: 45}}},
		}},
		{Members: map[PlayerTag]*MemberWarStats{
			alice: {Attacks: []WarAttack{{Stars: 1, Destruction: 40, Duration: 180}}},
		}},
	}

	warStart := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	stats.Wars[EventKey(warStart)] = &WarStats{
		StartTime: warStart,
		Members: map[PlayerTag]*MemberWarStats{
			alice: {Attacks: []WarAttack{{Stars: 3, Destruction: 100, Duration: 60}, {Stars: 1, Destruction: 50, Duration: 90}}},
			bob:   {Attacks: []WarAttack{{Stars: 2, Destruction: 80, Duration: 100}}},
		},
	}

	raidStart := time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)
	stats.RaidWeekends[EventKey(raidStart)] = &RaidWeekendStats{
		StartTime: raidStart,
		Members: map[PlayerTag]*RaidMember{
			alice: {Looted: 1000},
			bob:   {Looted: 500},
		},
	}

	stats.Games[alice] = &PlayerGamesStats{StartScore: intPtr(50), EndScore: 120}

	return stats
}

func TestPlayersSummary(t *testing.T) {
	stats := testClanStats()

	summaries := stats.PlayersSummary()
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	got, ok := summaries["#ALICE"]
	if !ok {
		t.Fatal("missing summary for #ALICE")
	}
	want := PlayerSummary{CwlStars: 6, WarStars: 4, RaidLoot: 1000, GamesScore: 70}
	if got != want {
		t.Fatalf("summary mismatch: got %+v, want %+v", got, want)
	}
}

func TestPlayersSummary_OmitsUnnamedMembers(t *testing.T) {
	stats := testClanStats()

	// #BOB has war, CWL and raid data but no recorded name.
	if _, ok := stats.PlayersSummary()["#BOB"]; ok {
		t.Fatal("summary must not include members without a recorded name")
	}
}

func TestPlayerGamesStats_Score(t *testing.T) {
	cases := []struct {
		name  string
		stats *PlayerGamesStats
		want  int
	}{
		{"known start", &PlayerGamesStats{StartScore: intPtr(50), EndScore: 120}, 70},
		{"unknown start", &PlayerGamesStats{EndScore: 80}, 0},
		{"missing record", nil, 0},
	}
	for _, tc := range cases {
		if got := tc.stats.Score(); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestEventKeyOrdering(t *testing.T) {
	stats := NewClanStats()
	times := []time.Time{
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	for _, ts := range times {
		stats.Wars[EventKey(ts)] = &WarStats{StartTime: ts}
	}

	keys := stats.WarKeys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not in chronological order: %v", keys)
		}
	}
}

func TestClanStats_Clone(t *testing.T) {
	original := testClanStats()
	clone := original.Clone()

	clone.PlayerNames["#CAROL"] = "Carol"
	clone.Games["#ALICE"].EndScore = 999
	for _, war := range clone.Wars {
		war.Members["#ALICE"].Attacks[0].Stars = 0
	}

	if _, ok := original.PlayerNames["#CAROL"]; ok {
		t.Fatal("clone shares PlayerNames with original")
	}
	if original.Games["#ALICE"].EndScore != 120 {
		t.Fatal("clone shares Games with original")
	}
	sum := original.PlayersSummary()["#ALICE"]
	if sum.WarStars != 4 {
		t.Fatal("clone shares war attacks with original")
	}
}
