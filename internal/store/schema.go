package store

// schemaVersion1 is the launches table with a site index.
const schemaVersion1 = 1

const currentSchemaVersion = schemaVersion1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS launches (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	flight_number            INTEGER NOT NULL DEFAULT 0,
	launch_site              TEXT    NOT NULL,
	class                    INTEGER NOT NULL CHECK (class IN (0, 1)),
	payload_mass_kg          REAL    NOT NULL,
	booster_version          TEXT    NOT NULL DEFAULT '',
	booster_version_category TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_launches_site ON launches(launch_site);
`
