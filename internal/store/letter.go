package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/signtutor/internal/landmark"
)

// Letter represents a reference letter row.
type Letter struct {
	Letter         string
	TrainedSamples int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LetterRepository provides CRUD operations for reference letters.
type LetterRepository struct {
	db *sql.DB
}

// Letters returns the letter repository for this store.
func (s *Store) Letters() *LetterRepository {
	return &LetterRepository{db: s.db}
}

// Upsert stores or replaces the canonical landmark set for a letter.
func (r *LetterRepository) Upsert(letter string, set landmark.Set) error {
	if len(set) != landmark.NumLandmarks {
		return fmt.Errorf("letter %q: got %d landmarks, want %d", letter, len(set), landmark.NumLandmarks)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO letters (letter, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(letter) DO UPDATE SET updated_at = excluded.updated_at`,
		letter, time.Now(), time.Now(),
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM letter_landmarks WHERE letter = ?`, letter); err != nil {
		return err
	}

	for i, p := range set {
		_, err := tx.Exec(
			`INSERT INTO letter_landmarks (letter, landmark_index, x, y) VALUES (?, ?, ?, ?)`,
			letter, i, p.X, p.Y,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get retrieves the canonical landmark set for a letter.
func (r *LetterRepository) Get(letter string) (landmark.Set, error) {
	rows, err := r.db.Query(
		`SELECT landmark_index, x, y FROM letter_landmarks
		 WHERE letter = ? ORDER BY landmark_index`,
		letter,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(landmark.Set, 0, landmark.NumLandmarks)
	for rows.Next() {
		var idx int
		var p landmark.Point2D
		if err := rows.Scan(&idx, &p.X, &p.Y); err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(set) == 0 {
		return nil, ErrNotFound
	}
	if len(set) != landmark.NumLandmarks {
		return nil, fmt.Errorf("letter %q: stored set has %d landmarks, want %d", letter, len(set), landmark.NumLandmarks)
	}

	return set, nil
}

// List retrieves all letters ordered alphabetically.
func (r *LetterRepository) List() ([]*Letter, error) {
	rows, err := r.db.Query(
		`SELECT letter, trained_samples, created_at, updated_at FROM letters ORDER BY letter`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var letters []*Letter
	for rows.Next() {
		l := &Letter{}
		if err := rows.Scan(&l.Letter, &l.TrainedSamples, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return letters, nil
}

// Delete removes a letter, its landmarks and samples.
func (r *LetterRepository) Delete(letter string) error {
	result, err := r.db.Exec(`DELETE FROM letters WHERE letter = ?`, letter)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AddSample records a raw landmark sample for later training.
// The parent letter row is created if it does not exist yet.
func (r *LetterRepository) AddSample(letter string, set landmark.Set) (string, error) {
	if len(set) != landmark.NumLandmarks {
		return "", fmt.Errorf("letter %q: got %d landmarks, want %d", letter, len(set), landmark.NumLandmarks)
	}

	data, err := json.Marshal(set)
	if err != nil {
		return "", err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO letters (letter) VALUES (?) ON CONFLICT(letter) DO NOTHING`,
		letter,
	)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = tx.Exec(
		`INSERT INTO letter_samples (id, letter, data, created_at) VALUES (?, ?, ?, ?)`,
		id, letter, string(data), time.Now(),
	)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListSamples retrieves all recorded samples for a letter, oldest first.
func (r *LetterRepository) ListSamples(letter string) ([]landmark.Set, error) {
	rows, err := r.db.Query(
		`SELECT data FROM letter_samples WHERE letter = ? ORDER BY created_at`,
		letter,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []landmark.Set
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var set landmark.Set
		if err := json.Unmarshal([]byte(data), &set); err != nil {
			return nil, fmt.Errorf("corrupt sample for letter %q: %w", letter, err)
		}
		samples = append(samples, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// ClearSamples removes all recorded samples for a letter and records how
// many samples went into the last training run.
func (r *LetterRepository) ClearSamples(letter string, trainedCount int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM letter_samples WHERE letter = ?`, letter); err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE letters SET trained_samples = ?, updated_at = ? WHERE letter = ?`,
		trainedCount, time.Now(), letter,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// GetSetting retrieves a setting value by key.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// SetSetting stores a setting value by key.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
