// Package merge folds freshly computed advanced stats into persisted
// player records. It only ever touches the advanced-stat keys the pipeline
// owns; traditional counting stats and game-log metadata written by the
// stats fetcher pass through untouched.
package merge

import (
	"strconv"

	"github.com/prospectlab/milbstats/internal/model"
)

// UpdatePlayerRecord writes one player's recomputed stats into their
// persisted record, in place. statType is "batting" or "pitching"; it
// namespaces the target keys (batting, battingSplits, battingByLevel).
//
// Owned advanced-stat keys are deleted before the new values are written,
// so a key the current recomputation did not reproduce does not survive
// from an earlier run. Re-running with the same input is a no-op.
func UpdatePlayerRecord(player map[string]any, adv model.RateStats, splits map[string]model.RateStats, statType string, byLevel map[string]model.RateStats) {
	if player == nil {
		return
	}

	mergeOwned(submap(player, statType), adv)

	splitsKey := statType + "Splits"
	splitsMap := submap(player, splitsKey)
	for _, side := range []string{model.SplitVsLeft, model.SplitVsRight} {
		stats, ok := splits[side]
		if !ok {
			// No at-bats against this side in the recomputation:
			// the whole split entry is stale.
			delete(splitsMap, side)
			continue
		}
		mergeOwned(submap(splitsMap, side), stats)
	}
	if len(splitsMap) == 0 {
		delete(player, splitsKey)
	}

	levelKey := statType + "ByLevel"
	levelMap, hasLevels := player[levelKey].(map[string]any)
	if !hasLevels && len(byLevel) == 0 {
		return
	}
	if levelMap == nil {
		levelMap = make(map[string]any)
		player[levelKey] = levelMap
	}
	// Clear owned keys on every existing level first; levels the stats
	// fetcher wrote but this recomputation did not see keep their
	// traditional content.
	for _, v := range levelMap {
		if sub, ok := v.(map[string]any); ok {
			deleteOwned(sub)
		}
	}
	for level, stats := range byLevel {
		mergeOwned(submap(levelMap, level), stats)
	}
}

// InjectPerGameStats merges per-game rate stats into the matching entries
// of the player's existing game log. Entries without PBP data for their
// game id are left untouched; per-game stats for games missing from the
// log are dropped (the log is owned by the stats fetcher).
func InjectPerGameStats(player map[string]any, statType string, perGame map[string]model.RateStats) {
	if player == nil || len(perGame) == 0 {
		return
	}
	entries, ok := player[statType+"GameLog"].([]any)
	if !ok {
		return
	}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		id := gameKey(entry["gameId"])
		if id == "" {
			continue
		}
		stats, ok := perGame[id]
		if !ok {
			continue
		}
		mergeOwned(submap(entry, "stats"), stats)
	}
}

// mergeOwned replaces the owned advanced-stat keys of dst with stats,
// leaving every other key alone.
func mergeOwned(dst map[string]any, stats model.RateStats) {
	deleteOwned(dst)
	for k, v := range stats {
		dst[k] = v
	}
}

func deleteOwned(dst map[string]any) {
	for _, k := range model.AdvancedStatKeys {
		delete(dst, k)
	}
}

// submap returns parent[key] as a map, creating (or replacing a
// non-map value) as needed.
func submap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := make(map[string]any)
	parent[key] = m
	return m
}

// gameKey normalizes a decoded-JSON game id to the string form the
// aggregator keys per-game stats by.
func gameKey(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	}
	return ""
}
