package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPerftRoundTrip(t *testing.T) {
	s := openTest(t)

	if _, ok, err := s.LoadPerft(0xABCD, 3); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := s.SavePerft(0xABCD, 3, "fen", 8902); err != nil {
		t.Fatal(err)
	}
	nodes, ok, err := s.LoadPerft(0xABCD, 3)
	if err != nil || !ok || nodes != 8902 {
		t.Errorf("LoadPerft = %d %v %v", nodes, ok, err)
	}

	if _, ok, _ := s.LoadPerft(0xABCD, 4); ok {
		t.Error("depth 4 should miss")
	}
}

func TestSearchRoundTrip(t *testing.T) {
	s := openTest(t)

	if err := s.SaveSearch(1, 4, "fen", "e2e4", -35); err != nil {
		t.Fatal(err)
	}
	move, score, ok, err := s.LoadSearch(1, 4)
	if err != nil || !ok || move != "e2e4" || score != -35 {
		t.Errorf("LoadSearch = %q %d %v %v", move, score, ok, err)
	}
	if _, _, ok, _ := s.LoadSearch(2, 4); ok {
		t.Error("other hash should miss")
	}
}

func TestPerftRecordsListsOnlyPerft(t *testing.T) {
	s := openTest(t)

	for depth := 1; depth <= 3; depth++ {
		if err := s.SavePerft(7, depth, "fen", uint64(depth*10)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SaveSearch(7, 2, "fen", "a2a3", 0); err != nil {
		t.Fatal(err)
	}

	recs, err := s.PerftRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for i, r := range recs {
		if r.Depth != i+1 || r.Nodes != uint64((i+1)*10) || r.Hash != 7 {
			t.Errorf("record %d = %+v", i, r)
		}
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if recs, _ := s.PerftRecords(); len(recs) != 0 {
		t.Errorf("%d records after Clear", len(recs))
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePerft(99, 2, "fen", 400); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if nodes, ok, _ := s.LoadPerft(99, 2); !ok || nodes != 400 {
		t.Errorf("after reopen: %d %v", nodes, ok)
	}
}

func TestDatabaseDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("CHESSMASK_DB", dir)

	got, err := GetDatabaseDir()
	if err != nil || got != dir {
		t.Errorf("GetDatabaseDir = %q, %v", got, err)
	}
}

func TestDatabaseDirDefault(t *testing.T) {
	t.Setenv("CHESSMASK_DB", "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LocalAppData", t.TempDir())

	got, err := GetDatabaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "db" || filepath.Base(filepath.Dir(got)) != appName {
		t.Errorf("GetDatabaseDir = %q, want .../%s/db", got, appName)
	}
	if fi, err := os.Stat(got); err != nil || !fi.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}
