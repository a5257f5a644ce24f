package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveGame("lazer", "first", 70, []byte("state"))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadSave(id); err != nil {
		t.Errorf("save lost across reopen: %v", err)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveGame("lazer", "sandbox", 50, []byte("grid: {}"))
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveGame() returned an empty ID")
	}

	entry, err := store.LoadSave(id)
	if err != nil {
		t.Fatalf("LoadSave() failed: %v", err)
	}
	if entry.GameID != "lazer" || entry.Name != "sandbox" || entry.Score != 50 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if string(entry.State) != "grid: {}" {
		t.Errorf("state = %q", entry.State)
	}

	if _, err := store.LoadSave("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadSave(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStoreLatestSaveAndList(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LatestSave("lazer"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestSave on empty store: %v", err)
	}

	var ids []string
	for i, name := range []string{"one", "two", "three"} {
		id, err := store.SaveGame("lazer", name, i*10, []byte(name))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	if _, err := store.SaveGame("lazer_puzzle", "other", 0, []byte("x")); err != nil {
		t.Fatal(err)
	}

	latest, err := store.LatestSave("lazer")
	if err != nil {
		t.Fatalf("LatestSave() failed: %v", err)
	}
	if latest.ID != ids[2] || string(latest.State) != "three" {
		t.Errorf("LatestSave() = %s (%s), want %s", latest.ID, latest.Name, ids[2])
	}

	saves, err := store.ListSaves("lazer", 10)
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 3 {
		t.Fatalf("expected 3 lazer saves, got %d", len(saves))
	}
	if saves[0].Name != "three" || saves[2].Name != "one" {
		t.Errorf("saves not newest first: %s, %s", saves[0].Name, saves[2].Name)
	}
	if saves[0].State != nil {
		t.Error("ListSaves should not load state")
	}

	all, err := store.ListSaves("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 saves across games, got %d", len(all))
	}

	limited, _ := store.ListSaves("", 2)
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

func TestStoreDeleteSave(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveGame("lazer", "doomed", 0, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteSave(id); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, err := store.LoadSave(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted save still loadable: %v", err)
	}
	if err := store.DeleteSave(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteSave() error = %v, want ErrNotFound", err)
	}
}

func TestStoreShots(t *testing.T) {
	store := openTestStore(t)

	shots := []ShotEntry{
		{SessionID: "s1", GameID: "lazer", Beams: 1, Outcome: "scored", Points: 50, Steps: 4, Path: "(0,0) -> (0,1)"},
		{SessionID: "s1", GameID: "lazer", Beams: 1, Outcome: "exited", Steps: 8},
		{SessionID: "s1", GameID: "lazer", Beams: 1, Outcome: "scored", Points: 20, Steps: 2},
		{SessionID: "s2", GameID: "lazer_puzzle", BoardID: "01-first-light", Beams: 1, Outcome: "absorbed", Steps: 3},
	}
	for _, s := range shots {
		if _, err := store.RecordShot(s); err != nil {
			t.Fatalf("RecordShot() failed: %v", err)
		}
	}

	recent, err := store.RecentShots("lazer", 2)
	if err != nil {
		t.Fatalf("RecentShots() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(recent))
	}
	if recent[0].Points != 20 || recent[1].Outcome != "exited" {
		t.Errorf("shots not newest first: %+v", recent)
	}

	stats, err := store.GetShotStats("lazer")
	if err != nil {
		t.Fatalf("GetShotStats() failed: %v", err)
	}
	if stats.Total != 3 || stats.Points != 70 {
		t.Errorf("stats total=%d points=%d, want 3 and 70", stats.Total, stats.Points)
	}
	if stats.ByOutcome["scored"] != 2 || stats.ByOutcome["exited"] != 1 {
		t.Errorf("by outcome = %v", stats.ByOutcome)
	}

	all, _ := store.GetShotStats("")
	if all.Total != 4 || all.ByOutcome["absorbed"] != 1 {
		t.Errorf("all-games stats = %+v", all)
	}

	if err := store.ClearShots("lazer"); err != nil {
		t.Fatalf("ClearShots() failed: %v", err)
	}
	left, _ := store.RecentShots("", 10)
	if len(left) != 1 || left[0].BoardID != "01-first-light" {
		t.Errorf("ClearShots removed the wrong rows: %+v", left)
	}
}
