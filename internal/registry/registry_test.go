package registry

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *DB) {
	t.Helper()
	err := db.Upsert([]Entry{
		{ID: "101", Name: "Jackson Chourio", Type: "batter", Team: "Nashville Sounds", Level: "AAA", LastYear: 2025, LastMonth: 6},
		{ID: "102", Name: "Jackson Jobe", Type: "pitcher", Team: "Toledo Mud Hens", Level: "AAA", LastYear: 2025, LastMonth: 5},
		{ID: "103", Name: "Sal Stewart", Type: "two-way", Team: "Chattanooga Lookouts", Level: "AA", LastYear: 2025, LastMonth: 6},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
}

func TestSearchByName(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	got, err := db.SearchByName("jackson", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search returned %d entries, want 2: %v", len(got), got)
	}
	// Ordered by name.
	if got[0].Name != "Jackson Chourio" || got[1].Name != "Jackson Jobe" {
		t.Errorf("search order = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestSearchLimit(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	got, err := db.SearchByName("jackson", 1)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("search returned %d entries, want 1", len(got))
	}
}

func TestGetByID(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	e, err := db.GetByID("103")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if e == nil {
		t.Fatal("GetByID returned nil for an indexed player")
	}
	if e.Name != "Sal Stewart" || e.Type != "two-way" || e.LastYear != 2025 {
		t.Errorf("entry = %+v", e)
	}

	missing, err := db.GetByID("999")
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("GetByID(missing) = %+v, want nil", missing)
	}
}

func TestUpsertReplaces(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	err := db.Upsert([]Entry{
		{ID: "101", Name: "Jackson Chourio", Type: "batter", Team: "Milwaukee Brewers", Level: "AAA", LastYear: 2025, LastMonth: 8},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	e, err := db.GetByID("101")
	if err != nil {
		t.Fatal(err)
	}
	if e.Team != "Milwaukee Brewers" || e.LastMonth != 8 {
		t.Errorf("entry not replaced: %+v", e)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3 after replace", n)
	}
}
