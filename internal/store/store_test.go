package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ayusman/signtutor/internal/landmark"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSet() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)
	for i := range s {
		s[i] = landmark.Point2D{X: float64(i) * 0.01, Y: 0.8 - float64(i)*0.02}
	}
	return s
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"letters", "letter_landmarks", "letter_samples", "settings"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}
}

func TestLetterRepository_UpsertAndGet(t *testing.T) {
	s := newTestStore(t)
	set := testSet()

	if err := s.Letters().Upsert("A", set); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := s.Letters().Get("A")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != landmark.NumLandmarks {
		t.Fatalf("len(got) = %d, want %d", len(got), landmark.NumLandmarks)
	}
	for i := range set {
		if got[i] != set[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], set[i])
		}
	}
}

func TestLetterRepository_UpsertReplaces(t *testing.T) {
	s := newTestStore(t)

	if err := s.Letters().Upsert("A", testSet()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	replacement := testSet()
	replacement[0] = landmark.Point2D{X: 0.42, Y: 0.42}
	if err := s.Letters().Upsert("A", replacement); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := s.Letters().Get("A")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got[0] != replacement[0] {
		t.Errorf("got[0] = %v, want %v", got[0], replacement[0])
	}
}

func TestLetterRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Letters().Get("Z")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(Z) error = %v, want ErrNotFound", err)
	}
}

func TestLetterRepository_UpsertRejectsWrongCardinality(t *testing.T) {
	s := newTestStore(t)

	if err := s.Letters().Upsert("A", make(landmark.Set, 3)); err == nil {
		t.Error("Upsert with 3 landmarks should fail")
	}
}

func TestLetterRepository_ListAndDelete(t *testing.T) {
	s := newTestStore(t)

	for _, letter := range []string{"B", "A"} {
		if err := s.Letters().Upsert(letter, testSet()); err != nil {
			t.Fatalf("Upsert(%q) error = %v", letter, err)
		}
	}

	letters, err := s.Letters().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(letters) != 2 || letters[0].Letter != "A" || letters[1].Letter != "B" {
		t.Fatalf("List() = %+v, want [A B]", letters)
	}

	if err := s.Letters().Delete("A"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Letters().Get("A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(A) after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Letters().Delete("A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestLetterRepository_Samples(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Letters().AddSample("A", testSet())
	if err != nil {
		t.Fatalf("AddSample() error = %v", err)
	}
	id2, err := s.Letters().AddSample("A", testSet())
	if err != nil {
		t.Fatalf("AddSample() error = %v", err)
	}
	if id1 == id2 {
		t.Error("sample IDs should be unique")
	}

	samples, err := s.Letters().ListSamples("A")
	if err != nil {
		t.Fatalf("ListSamples() error = %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("len(samples) = %d, want 2", len(samples))
	}

	if err := s.Letters().ClearSamples("A", 2); err != nil {
		t.Fatalf("ClearSamples() error = %v", err)
	}
	samples, err = s.Letters().ListSamples("A")
	if err != nil {
		t.Fatalf("ListSamples() after clear error = %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("len(samples) after clear = %d, want 0", len(samples))
	}

	letters, err := s.Letters().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(letters) != 1 || letters[0].TrainedSamples != 2 {
		t.Errorf("List() = %+v, want one letter with 2 trained samples", letters)
	}
}

func TestStore_Settings(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetSetting("camera_id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSetting(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.SetSetting("camera_id", "1"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := s.SetSetting("camera_id", "2"); err != nil {
		t.Fatalf("SetSetting() overwrite error = %v", err)
	}

	value, err := s.GetSetting("camera_id")
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if value != "2" {
		t.Errorf("GetSetting() = %q, want %q", value, "2")
	}
}
