package apifootball

import (
	"fmt"
	"sort"
	"strings"
)

// Envelope is the common API-Football response wrapper. Errors is either an
// empty list or an object of messages keyed by cause.
type Envelope[T any] struct {
	Get      string  `json:"get"`
	Errors   any     `json:"errors"`
	Results  int     `json:"results"`
	Paging   *paging `json:"paging"`
	Response []T     `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

func (e *Envelope[T]) errorMessages() []string {
	if e == nil {
		return nil
	}

	switch typed := e.Errors.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := make([]string, 0, len(keys))
		for _, key := range keys {
			out = append(out, fmt.Sprintf("%s: %v", key, typed[key]))
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if text := strings.TrimSpace(fmt.Sprint(item)); text != "" {
				out = append(out, text)
			}
		}
		return out
	case string:
		if strings.TrimSpace(typed) != "" {
			return []string{typed}
		}
	}
	return nil
}

type teamPayload struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type personPayload struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
}

type standingsItem struct {
	League *struct {
		ID        any             `json:"id"`
		Name      string          `json:"name"`
		Season    any             `json:"season"`
		Standings [][]standingRow `json:"standings"`
	} `json:"league"`
}

type standingRow struct {
	Rank        any             `json:"rank"`
	Team        *teamPayload    `json:"team"`
	Points      any             `json:"points"`
	GoalsDiff   any             `json:"goalsDiff"`
	Group       string          `json:"group"`
	Form        *string         `json:"form"`
	Description *string         `json:"description"`
	All         *standingRecord `json:"all"`
}

type standingRecord struct {
	Played any `json:"played"`
	Win    any `json:"win"`
	Draw   any `json:"draw"`
	Lose   any `json:"lose"`
	Goals  *struct {
		For     any `json:"for"`
		Against any `json:"against"`
	} `json:"goals"`
}

type scorePair struct {
	Home any `json:"home"`
	Away any `json:"away"`
}

type fixtureItem struct {
	Fixture *struct {
		ID    any    `json:"id"`
		Date  string `json:"date"`
		Venue *struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status *struct {
			Long    string `json:"long"`
			Short   string `json:"short"`
			Elapsed any    `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League *struct {
		ID     any    `json:"id"`
		Name   string `json:"name"`
		Season any    `json:"season"`
	} `json:"league"`
	Teams *struct {
		Home *teamPayload `json:"home"`
		Away *teamPayload `json:"away"`
	} `json:"teams"`
	Goals *scorePair `json:"goals"`
	Score *struct {
		Halftime  *scorePair `json:"halftime"`
		Fulltime  *scorePair `json:"fulltime"`
		Extratime *scorePair `json:"extratime"`
		Penalty   *scorePair `json:"penalty"`
	} `json:"score"`
}

type eventItem struct {
	Time *struct {
		Elapsed any `json:"elapsed"`
		Extra   any `json:"extra"`
	} `json:"time"`
	Team     *teamPayload   `json:"team"`
	Player   *personPayload `json:"player"`
	Assist   *personPayload `json:"assist"`
	Type     string         `json:"type"`
	Detail   string         `json:"detail"`
	Comments *string        `json:"comments"`
}

type lineupPlayerSlot struct {
	Player *struct {
		ID     any     `json:"id"`
		Name   string  `json:"name"`
		Number any     `json:"number"`
		Pos    string  `json:"pos"`
		Grid   *string `json:"grid"`
	} `json:"player"`
}

type lineupItem struct {
	Team      *teamPayload `json:"team"`
	Formation string       `json:"formation"`
	Coach     *struct {
		ID    any    `json:"id"`
		Name  string `json:"name"`
		Photo string `json:"photo"`
	} `json:"coach"`
	StartXI     []lineupPlayerSlot `json:"startXI"`
	Substitutes []lineupPlayerSlot `json:"substitutes"`
}

type playerProfile struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Age         any    `json:"age"`
	Nationality string `json:"nationality"`
	Photo       string `json:"photo"`
	Injured     any    `json:"injured"`
}

type playerStatistics struct {
	Team  *teamPayload `json:"team"`
	Games *struct {
		Appearences any    `json:"appearences"`
		Number      any    `json:"number"`
		Position    string `json:"position"`
	} `json:"games"`
	Goals *struct {
		Total   any `json:"total"`
		Assists any `json:"assists"`
	} `json:"goals"`
}

// playerItem is shared by the players and players/topscorers resources.
type playerItem struct {
	Player     *playerProfile     `json:"player"`
	Statistics []playerStatistics `json:"statistics"`
}

type coachItem struct {
	ID          any          `json:"id"`
	Name        string       `json:"name"`
	Age         any          `json:"age"`
	Nationality string       `json:"nationality"`
	Photo       string       `json:"photo"`
	Team        *teamPayload `json:"team"`
}

type transferItem struct {
	Player    *personPayload `json:"player"`
	Transfers []struct {
		Date  string `json:"date"`
		Type  any    `json:"type"`
		Teams *struct {
			In  *teamPayload `json:"in"`
			Out *teamPayload `json:"out"`
		} `json:"teams"`
	} `json:"transfers"`
}

type trophyItem struct {
	League  string `json:"league"`
	Country string `json:"country"`
	Season  any    `json:"season"`
	Place   string `json:"place"`
}

type injuryItem struct {
	Player *struct {
		ID     any    `json:"id"`
		Name   string `json:"name"`
		Photo  string `json:"photo"`
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"player"`
	Team *teamPayload `json:"team"`
}

type oddsValue struct {
	Value any `json:"value"`
	Odd   any `json:"odd"`
}

type oddsBet struct {
	ID     any         `json:"id"`
	Name   string      `json:"name"`
	Values []oddsValue `json:"values"`
}

type oddsItem struct {
	Bookmakers []struct {
		ID   any       `json:"id"`
		Name string    `json:"name"`
		Bets []oddsBet `json:"bets"`
	} `json:"bookmakers"`
}

type liveOddsItem struct {
	Odds []oddsBet `json:"odds"`
}

type statisticsItem struct {
	Team       *teamPayload `json:"team"`
	Statistics []struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	} `json:"statistics"`
}
