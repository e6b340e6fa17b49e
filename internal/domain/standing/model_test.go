package standing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_LookupAndTeams(t *testing.T) {
	t.Parallel()

	table := NewTable([]TeamSeasonStats{
		{ID: 65, Name: "Manchester City FC", Played: 7, Won: 5, GoalsFor: 17, GoalsAgainst: 5},
		{ID: 57, Name: "Arsenal FC", Played: 7, Won: 5, GoalsFor: 12, GoalsAgainst: 3},
		{ID: 64, Name: "Liverpool FC", Played: 7, Won: 5, GoalsFor: 13, GoalsAgainst: 8},
	})

	require.Equal(t, 3, table.Len())

	row, ok := table.Lookup(57)
	require.True(t, ok)
	assert.Equal(t, "Arsenal FC", row.Name)

	_, ok = table.Lookup(999)
	assert.False(t, ok)

	teams := table.Teams()
	require.Len(t, teams, 3)
	assert.Equal(t, []string{"Arsenal FC", "Liverpool FC", "Manchester City FC"},
		[]string{teams[0].Name, teams[1].Name, teams[2].Name})

	assert.Equal(t, TeamID(64), table.IDByName()["Liverpool FC"])
}

func TestTable_TeamsReturnsCopy(t *testing.T) {
	t.Parallel()

	table := NewTable([]TeamSeasonStats{{ID: 1, Name: "A", Played: 1}})
	teams := table.Teams()
	teams[0].Played = 99

	row, _ := table.Lookup(1)
	assert.Equal(t, 1, row.Played)
}

func TestTable_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var table *Table
	_, ok := table.Lookup(1)
	assert.False(t, ok)
	assert.Zero(t, table.Len())
	assert.Empty(t, table.IDByName())
}

func TestTeamSeasonStats_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, TeamSeasonStats{ID: 1, Played: 0}.Validate())
	require.Error(t, TeamSeasonStats{ID: 0}.Validate())
	require.Error(t, TeamSeasonStats{ID: 1, Played: 2, Won: 3}.Validate())
	require.Error(t, TeamSeasonStats{ID: 1, GoalsFor: -1}.Validate())
}
