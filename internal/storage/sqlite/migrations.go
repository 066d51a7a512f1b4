package sqlite

import "database/sql"

// schema runs on startup to ensure tables exist. Countries come first
// because persons reference them.
const schema = `
CREATE TABLE IF NOT EXISTS countries (
    country_id TEXT PRIMARY KEY,
    country_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS persons (
    person_id TEXT PRIMARY KEY,
    person_name TEXT NOT NULL,
    email TEXT NOT NULL,
    date_of_birth TEXT,
    gender TEXT,
    country_id TEXT,
    address TEXT,
    receive_news_letters INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (country_id) REFERENCES countries(country_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_persons_country_id ON persons(country_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
