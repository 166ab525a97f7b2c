package insights

import (
	"time"
)

// Match identifies the fixture an insights composite is aggregated for.
type Match struct {
	ID          int64
	LeagueID    int64
	Season      int
	HomeTeamID  int64
	AwayTeamID  int64
	HomeCoachID int64
	AwayCoachID int64
	KickoffAt   time.Time
}

// ResolvedSeason returns the explicit season or the one the kickoff belongs to.
// Seasons are named after the year they started; kickoffs before July fall into
// the previous year's season.
func (m Match) ResolvedSeason() int {
	if m.Season > 0 {
		return m.Season
	}
	if m.KickoffAt.IsZero() {
		return 0
	}
	kickoff := m.KickoffAt.UTC()
	if kickoff.Month() < time.July {
		return kickoff.Year() - 1
	}
	return kickoff.Year()
}

type Options struct {
	ForceRefresh bool
	AllowStale   bool
}

// CacheEntry is immutable once written; refreshes overwrite it wholesale.
type CacheEntry struct {
	Data     Composite
	CachedAt time.Time
	TTL      time.Duration
}

func (e CacheEntry) Fresh(now time.Time) bool {
	return now.Before(e.CachedAt.Add(e.TTL))
}

type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// TeamSplit holds one section per side of the match.
type TeamSplit[T any] struct {
	Home []T `json:"home"`
	Away []T `json:"away"`
}

func (s TeamSplit[T]) normalize() TeamSplit[T] {
	return TeamSplit[T]{Home: nonNil(s.Home), Away: nonNil(s.Away)}
}

type OddsBook struct {
	PreMatch []OddsSummary `json:"preMatch"`
	Live     []OddsSummary `json:"live"`
}

// Composite is the aggregated insight document for one match.
type Composite struct {
	Standings  []Standing             `json:"standings"`
	HeadToHead []FixtureSummary       `json:"headToHead"`
	Events     []Event                `json:"events"`
	Lineups    []Lineup               `json:"lineups"`
	TopScorers []TopScorer            `json:"topScorers"`
	Squads     TeamSplit[SquadPlayer] `json:"squads"`
	Coaches    TeamSplit[Coach]       `json:"coaches"`
	Transfers  TeamSplit[Transfer]    `json:"transfers"`
	Trophies   TeamSplit[Trophy]      `json:"trophies"`
	Injuries   []Injury               `json:"injuries"`
	Odds       OddsBook               `json:"odds"`
	Statistics []TeamStatistics       `json:"statistics"`
}

// Empty returns a composite whose sections are all present and empty.
func Empty() Composite {
	return Composite{}.Normalize()
}

// Normalize replaces every missing section with an empty one.
func (c Composite) Normalize() Composite {
	c.Standings = nonNil(c.Standings)
	c.HeadToHead = nonNil(c.HeadToHead)
	c.Events = nonNil(c.Events)
	c.Lineups = nonNil(c.Lineups)
	c.TopScorers = nonNil(c.TopScorers)
	c.Squads = c.Squads.normalize()
	c.Coaches = c.Coaches.normalize()
	c.Transfers = c.Transfers.normalize()
	c.Trophies = c.Trophies.normalize()
	c.Injuries = nonNil(c.Injuries)
	c.Odds.PreMatch = nonNil(c.Odds.PreMatch)
	c.Odds.Live = nonNil(c.Odds.Live)
	c.Statistics = nonNil(c.Statistics)
	return c
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

type Standing struct {
	Rank         int     `json:"rank"`
	Team         TeamRef `json:"team"`
	Points       int     `json:"points"`
	GoalsDiff    int     `json:"goalsDiff"`
	Group        string  `json:"group,omitempty"`
	Form         string  `json:"form,omitempty"`
	Description  string  `json:"description,omitempty"`
	Played       int     `json:"played"`
	Win          int     `json:"win"`
	Draw         int     `json:"draw"`
	Lose         int     `json:"lose"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
}

type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type FixtureSummary struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Elapsed    *int      `json:"elapsed,omitempty"`
	LeagueID   int64     `json:"leagueId"`
	LeagueName string    `json:"leagueName,omitempty"`
	Season     int       `json:"season,omitempty"`
	Venue      string    `json:"venue,omitempty"`
	HomeTeam   TeamRef   `json:"homeTeam"`
	AwayTeam   TeamRef   `json:"awayTeam"`
	Score      *Score    `json:"score"`
}

type Event struct {
	Minute     int     `json:"minute"`
	Extra      int     `json:"extra,omitempty"`
	Team       TeamRef `json:"team"`
	PlayerID   int64   `json:"playerId,omitempty"`
	PlayerName string  `json:"playerName,omitempty"`
	AssistID   int64   `json:"assistId,omitempty"`
	AssistName string  `json:"assistName,omitempty"`
	Type       string  `json:"type"`
	Detail     string  `json:"detail,omitempty"`
	Comments   string  `json:"comments,omitempty"`
}

type CoachRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

type LineupPlayer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number,omitempty"`
	Position string `json:"position,omitempty"`
	Grid     string `json:"grid,omitempty"`
}

type Lineup struct {
	Team        TeamRef        `json:"team"`
	Formation   string         `json:"formation,omitempty"`
	Coach       CoachRef       `json:"coach"`
	StartXI     []LineupPlayer `json:"startXI"`
	Substitutes []LineupPlayer `json:"substitutes"`
}

type TopScorer struct {
	Rank        int     `json:"rank"`
	PlayerID    int64   `json:"playerId"`
	Name        string  `json:"name"`
	Photo       string  `json:"photo,omitempty"`
	Nationality string  `json:"nationality,omitempty"`
	Team        TeamRef `json:"team"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Appearances int     `json:"appearances"`
}

type SquadPlayer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Photo       string `json:"photo,omitempty"`
	Injured     bool   `json:"injured"`
	Position    string `json:"position,omitempty"`
	Appearances int    `json:"appearances"`
	Goals       int    `json:"goals"`
}

type Coach struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Age         int     `json:"age,omitempty"`
	Nationality string  `json:"nationality,omitempty"`
	Photo       string  `json:"photo,omitempty"`
	Team        TeamRef `json:"team"`
}

type Transfer struct {
	PlayerID   int64   `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Date       string  `json:"date,omitempty"`
	Type       string  `json:"type,omitempty"`
	In         TeamRef `json:"in"`
	Out        TeamRef `json:"out"`
}

type Trophy struct {
	League  string `json:"league"`
	Country string `json:"country,omitempty"`
	Season  string `json:"season,omitempty"`
	Place   string `json:"place,omitempty"`
}

type Injury struct {
	PlayerID   int64   `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Photo      string  `json:"photo,omitempty"`
	Type       string  `json:"type,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Team       TeamRef `json:"team"`
}

// OddsSummary is the 1X2 price set of one bookmaker. A nil price was not offered.
type OddsSummary struct {
	BookmakerID int64    `json:"bookmakerId"`
	Bookmaker   string   `json:"bookmaker"`
	Home        *float64 `json:"home"`
	Draw        *float64 `json:"draw"`
	Away        *float64 `json:"away"`
}

type StatValue struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type TeamStatistics struct {
	Team  TeamRef     `json:"team"`
	Stats []StatValue `json:"stats"`
}
