package sqlite

import "database/sql"

// schema holds one row per person. The record itself is stored as a JSON payload;
// position carries the roster order and is_mentor lets ReplaceNonMentors filter in SQL.
const schema = `
CREATE TABLE IF NOT EXISTS people (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    is_mentor INTEGER NOT NULL DEFAULT 0,
    payload BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_people_position ON people(position);
CREATE INDEX IF NOT EXISTS idx_people_is_mentor ON people(is_mentor);
`

// runMigrations executes the schema creation SQL.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
