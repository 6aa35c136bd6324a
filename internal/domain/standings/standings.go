package standings

import (
	"sort"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
)

// Row is one league table line for a player.
type Row struct {
	PlayerID string
	Name     string
	Played   int
	Wins     int
	Draws    int
	Losses   int
	WinPct   float64
}

type result struct {
	darks  int
	whites int
}

// Compute folds locked gameweeks and their roster entries into one row per
// player. Entries on subs do not accrue a game played. Gameweeks without a
// recorded score pair contribute nothing. A player with no appearances keeps
// Played=0 and WinPct=0.
func Compute(players []player.Player, locked []gameweek.Gameweek, entries []roster.Entry) []Row {
	rows := make(map[string]*Row, len(players))
	order := make([]string, 0, len(players))
	for _, p := range players {
		rows[p.ID] = &Row{PlayerID: p.ID, Name: p.FullName()}
		order = append(order, p.ID)
	}

	results := make(map[string]result, len(locked))
	for _, gw := range locked {
		if !gw.HasResult() {
			continue
		}
		results[gw.ID] = result{darks: *gw.DarksScore, whites: *gw.WhitesScore}
	}

	for _, entry := range entries {
		if entry.Team == roster.TeamSubs {
			continue
		}
		res, ok := results[entry.GameweekID]
		if !ok {
			continue
		}
		row, ok := rows[entry.PlayerID]
		if !ok {
			continue
		}

		row.Played++
		own, opp := res.darks, res.whites
		if entry.Team == roster.TeamWhites {
			own, opp = res.whites, res.darks
		}
		switch {
		case own == opp:
			row.Draws++
		case own > opp:
			row.Wins++
		default:
			row.Losses++
		}
	}

	out := make([]Row, 0, len(order))
	for _, id := range order {
		row := rows[id]
		if row.Played > 0 {
			row.WinPct = float64(row.Wins) / float64(row.Played) * 100
		}
		out = append(out, *row)
	}

	return out
}

// SortForDisplay orders rows by wins desc, win% desc, games played desc,
// then name asc. Display order only; the rows themselves carry no ordering
// invariant.
func SortForDisplay(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.WinPct != b.WinPct {
			return a.WinPct > b.WinPct
		}
		if a.Played != b.Played {
			return a.Played > b.Played
		}
		return a.Name < b.Name
	})
}
