package performance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/discochess/enginemetrics/internal/game"
)

func TestMerge_SumsCountersNotRates(t *testing.T) {
	// 1/1 and 0/3: averaging rates would give 50%, summing gives 25%.
	first := Aggregate([]game.Record{{White: "SlowMate", Black: "C0BR4", Result: "1-0"}})
	second := Aggregate([]game.Record{
		{White: "SlowMate", Black: "C0BR4", Result: "0-1"},
		{White: "SlowMate", Black: "C0BR4", Result: "0-1"},
		{White: "SlowMate", Black: "C0BR4", Result: "0-1"},
	})

	summary := Merge([]Snapshot{
		{Engines: first, TotalGames: 1},
		{Engines: second, TotalGames: 3},
	}, "", MergeOptions{})

	s, ok := summary.Engines.Get("SlowMate")
	require.True(t, ok)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 3, s.Losses)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 25.0, s.WinRate)
	assert.Equal(t, 4, summary.TotalGamesAnalyzed)
}

func TestMerge_IgnoresStoredRates(t *testing.T) {
	var table Table
	require.NoError(t, json.Unmarshal([]byte(`{"V7P3R":{"wins":1,"draws":0,"losses":1,"total":2,"win_rate":99}}`), &table))

	summary := Merge([]Snapshot{{Engines: &table, TotalGames: 2}}, "", MergeOptions{})
	s, ok := summary.Engines.Get("V7P3R")
	require.True(t, ok)
	assert.Equal(t, 50.0, s.WinRate)
}

func TestMerge_Filter(t *testing.T) {
	table := Aggregate([]game.Record{
		{White: "SlowMate", Black: "slowmate", Result: "1-0"},
		{White: "SlowMate", Black: "C0BR4", Result: "1/2-1/2"},
	})
	snapshots := []Snapshot{{Engines: table, TotalGames: 2}}

	t.Run("case-insensitive by default", func(t *testing.T) {
		summary := Merge(snapshots, "SLOWMATE", MergeOptions{})
		assert.Equal(t, []string{"SlowMate", "slowmate"}, summary.Engines.Names())
		assert.Equal(t, 2, summary.TotalGamesAnalyzed)
	})

	t.Run("case-sensitive flag", func(t *testing.T) {
		summary := Merge(snapshots, "slowmate", MergeOptions{CaseSensitiveFilter: true})
		assert.Equal(t, []string{"slowmate"}, summary.Engines.Names())
	})

	t.Run("no match", func(t *testing.T) {
		summary := Merge(snapshots, "V7P3R", MergeOptions{})
		assert.Equal(t, 0, summary.Engines.Len())
	})
}

func TestMerge_Empty(t *testing.T) {
	summary := Merge(nil, "", MergeOptions{})
	assert.Equal(t, 0, summary.Engines.Len())
	assert.Equal(t, 0, summary.TotalGamesAnalyzed)
}

func TestMerge_EqualsSingleAggregate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		batches := rapid.SliceOfN(rapid.SliceOf(genRecord(results)), 1, 5).Draw(t, "batches")

		var all []game.Record
		snapshots := make([]Snapshot, 0, len(batches))
		for _, b := range batches {
			all = append(all, b...)
			snapshots = append(snapshots, Snapshot{Engines: Aggregate(b), TotalGames: len(b)})
		}

		want := statsByName(Aggregate(all))
		got := statsByName(Merge(snapshots, "", MergeOptions{}).Engines)
		for name, s := range want {
			if got[name] != s {
				t.Fatalf("%s: merged %+v != aggregated %+v", name, got[name], s)
			}
		}
	})
}

func TestTable_JSONRoundTripKeepsOrder(t *testing.T) {
	table := Aggregate([]game.Record{
		{White: "V7P3R", Black: "COBRA", Result: "1-0"},
		{White: "SlowMate", Black: "C0BR4", Result: "0-1"},
	})

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"V7P3R", "COBRA", "SlowMate", "C0BR4"}, decoded.Names())

	s, ok := decoded.Get("C0BR4")
	require.True(t, ok)
	assert.Equal(t, 1, s.Wins)
}

func TestTable_NilSafe(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Names())

	data, err := table.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	var decoded Table
	require.NoError(t, json.Unmarshal([]byte("null"), &decoded))
	assert.Equal(t, 0, decoded.Len())
}
