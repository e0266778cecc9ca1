package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Letters table - one row per reference letter
		`CREATE TABLE IF NOT EXISTS letters (
			letter TEXT PRIMARY KEY CHECK(length(letter) = 1),
			trained_samples INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Letter landmarks table - canonical landmark positions per letter
		`CREATE TABLE IF NOT EXISTS letter_landmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			letter TEXT NOT NULL REFERENCES letters(letter) ON DELETE CASCADE,
			landmark_index INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL
		)`,

		// Letter samples table - raw recorded samples awaiting training
		`CREATE TABLE IF NOT EXISTS letter_samples (
			id TEXT PRIMARY KEY,
			letter TEXT NOT NULL REFERENCES letters(letter) ON DELETE CASCADE,
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_letter_landmarks_letter ON letter_landmarks(letter)`,
		`CREATE INDEX IF NOT EXISTS idx_letter_samples_letter ON letter_samples(letter)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
