package domain

import (
	"sort"
	"time"
)

// EventKey is the map key for time-ordered events (wars, raid weekends).
// It is the event start time in RFC3339 UTC, so lexicographic key order
// equals chronological order.
func EventKey(startTime time.Time) string {
	return startTime.UTC().Format(time.RFC3339)
}

// ClanStats bundles everything recorded for one clan in one season.
type ClanStats struct {
	// CWL holds all clan-war-league stats for the season.
	CWL CwlStats `json:"cwl"`
	// Wars maps war start time (EventKey) to that war's stats.
	Wars  map[string]*WarStats            `json:"wars"`
	Games map[PlayerTag]*PlayerGamesStats `json:"games"`
	// RaidWeekends maps raid start time (EventKey) to that raid's stats.
	RaidWeekends map[string]*RaidWeekendStats `json:"raid_weekend"`
	PlayerNames  map[PlayerTag]string         `json:"player_names"`
}

// NewClanStats returns an all-empty bundle with initialized maps.
func NewClanStats() *ClanStats {
	return &ClanStats{
		Wars:         make(map[string]*WarStats),
		Games:        make(map[PlayerTag]*PlayerGamesStats),
		RaidWeekends: make(map[string]*RaidWeekendStats),
		PlayerNames:  make(map[PlayerTag]string),
	}
}

// CwlStats holds the wars of one clan-war-league season.
type CwlStats struct {
	Wars []CwlWarStats `json:"wars"`
}

// CwlWarStats is a single CWL war, keyed by participating member.
type CwlWarStats struct {
	Members map[PlayerTag]*MemberWarStats `json:"members"`
}

// WarStats is a single regular war.
type WarStats struct {
	StartTime time.Time                     `json:"start_time"`
	Members   map[PlayerTag]*MemberWarStats `json:"members"`
}

// MemberWarStats is one member's contribution to one war.
type MemberWarStats struct {
	Attacks []WarAttack `json:"attacks"`
}

// WarAttack is a single attack in a war.
type WarAttack struct {
	Destruction int `json:"destruction"`
	Stars       int `json:"stars"`
	Duration    int `json:"duration"`
}

// RaidWeekendStats is a single raid weekend.
type RaidWeekendStats struct {
	StartTime time.Time                 `json:"start_time"`
	Members   map[PlayerTag]*RaidMember `json:"members"`
}

// RaidMember is one member's raid weekend contribution.
type RaidMember struct {
	Looted int `json:"looted"`
}

// PlayerGamesStats tracks a member's clan-games score over one event.
type PlayerGamesStats struct {
	StartScore *int `json:"start_score"`
	EndScore   int  `json:"end_score"`
}

// Score is the net contribution. An unknown start score yields zero
// rather than a misleading value.
func (s *PlayerGamesStats) Score() int {
	if s == nil || s.StartScore == nil {
		return 0
	}
	return s.EndScore - *s.StartScore
}

// PlayerSummary aggregates one member's contributions across every
// statistic kind of a season.
type PlayerSummary struct {
	CwlStars   int `json:"cwl_stars"`
	WarStars   int `json:"war_stars"`
	RaidLoot   int `json:"raid_loot"`
	GamesScore int `json:"games_score"`
}

// WarKeys returns the war event keys in chronological order.
func (c *ClanStats) WarKeys() []string {
	keys := make([]string, 0, len(c.Wars))
	for k := range c.Wars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RaidKeys returns the raid weekend event keys in chronological order.
func (c *ClanStats) RaidKeys() []string {
	keys := make([]string, 0, len(c.RaidWeekends))
	for k := range c.RaidWeekends {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PlayersSummary computes the per-member season summary. The member
// universe is the key set of PlayerNames: members with stats but no
// recorded name are excluded. That mirrors the upstream data flow where
// the roster is written before any stats, but it does mean a member only
// ever seen in war data stays invisible here.
//
// The result is rebuilt on every call; iteration order is unspecified.
func (c *ClanStats) PlayersSummary() map[PlayerTag]PlayerSummary {
	summaries := make(map[PlayerTag]PlayerSummary, len(c.PlayerNames))
	for tag := range c.PlayerNames {
		summaries[tag] = PlayerSummary{
			CwlStars:   c.cwlStars(tag),
			WarStars:   c.warStars(tag),
			RaidLoot:   c.raidLoot(tag),
			GamesScore: c.Games[tag].Score(),
		}
	}
	return summaries
}

func (c *ClanStats) cwlStars(tag PlayerTag) int {
	total := 0
	for _, war := range c.CWL.Wars {
		total += war.Members[tag].stars()
	}
	return total
}

func (c *ClanStats) warStars(tag PlayerTag) int {
	total := 0
	for _, war := range c.Wars {
		total += war.Members[tag].stars()
	}
	return total
}

func (c *ClanStats) raidLoot(tag PlayerTag) int {
	total := 0
	for _, raid := range c.RaidWeekends {
		if member, ok := raid.Members[tag]; ok {
			total += member.Looted
		}
	}
	return total
}

func (m *MemberWarStats) stars() int {
	if m == nil {
		return 0
	}
	total := 0
	for _, attack := range m.Attacks {
		total += attack.Stars
	}
	return total
}

// Clone returns a deep copy, so read-only views can leave the
// single-writer aggregate without sharing mutable state.
func (c *ClanStats) Clone() *ClanStats {
	if c == nil {
		return nil
	}
	out := NewClanStats()
	out.CWL.Wars = make([]CwlWarStats, 0, len(c.CWL.Wars))
	for _, war := range c.CWL.Wars {
		out.CWL.Wars = append(out.CWL.Wars, CwlWarStats{Members: cloneMembers(war.Members)})
	}
	if len(c.CWL.Wars) == 0 {
		out.CWL.Wars = nil
	}
	for k, war := range c.Wars {
		out.Wars[k] = &WarStats{StartTime: war.StartTime, Members: cloneMembers(war.Members)}
	}
	for tag, games := range c.Games {
		copied := *games
		if games.StartScore != nil {
			start := *games.StartScore
			copied.StartScore = &start
		}
		out.Games[tag] = &copied
	}
	for k, raid := range c.RaidWeekends {
		members := make(map[PlayerTag]*RaidMember, len(raid.Members))
		for tag, member := range raid.Members {
			copied := *member
			members[tag] = &copied
		}
		out.RaidWeekends[k] = &RaidWeekendStats{StartTime: raid.StartTime, Members: members}
	}
	for tag, name := range c.PlayerNames {
		out.PlayerNames[tag] = name
	}
	return out
}

func cloneMembers(members map[PlayerTag]*MemberWarStats) map[PlayerTag]*MemberWarStats {
	out := make(map[PlayerTag]*MemberWarStats, len(members))
	for tag, member := range members {
		copied := MemberWarStats{Attacks: append([]WarAttack(nil), member.Attacks...)}
		out[tag] = &copied
	}
	return out
}
