package standing

import (
	"fmt"
	"sort"
)

// TeamID is the provider-assigned team identifier. It is the join key between
// standings, match history and the form cache.
type TeamID int64

// TeamSeasonStats is one row of the league table.
type TeamSeasonStats struct {
	ID           TeamID
	Name         string
	Played       int
	Won          int
	GoalsFor     int
	GoalsAgainst int
}

func (s TeamSeasonStats) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if s.Played < 0 || s.Won < 0 || s.GoalsFor < 0 || s.GoalsAgainst < 0 {
		return fmt.Errorf("team id=%d has negative season stats", s.ID)
	}
	if s.Won > s.Played {
		return fmt.Errorf("team id=%d won=%d exceeds played=%d", s.ID, s.Won, s.Played)
	}
	return nil
}

// Table maps team ids to season stats. It cannot be modified after NewTable,
// so one table can be shared across a whole batch session.
type Table struct {
	rows map[TeamID]TeamSeasonStats
}

// NewTable builds a table from provider rows. A later row with the same id
// replaces an earlier one.
func NewTable(rows []TeamSeasonStats) *Table {
	out := make(map[TeamID]TeamSeasonStats, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return &Table{rows: out}
}

func (t *Table) Lookup(id TeamID) (TeamSeasonStats, bool) {
	if t == nil {
		return TeamSeasonStats{}, false
	}
	row, ok := t.rows[id]
	return row, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Teams returns a copy of all rows ordered by team name.
func (t *Table) Teams() []TeamSeasonStats {
	if t == nil {
		return nil
	}
	out := make([]TeamSeasonStats, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IDByName indexes the table by display name.
func (t *Table) IDByName() map[string]TeamID {
	out := make(map[string]TeamID, t.Len())
	if t == nil {
		return out
	}
	for id, row := range t.rows {
		out[row.Name] = id
	}
	return out
}
