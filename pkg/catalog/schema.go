package catalog

// Schema contains the SQL statements to create the catalog database schema.
const Schema = `
-- Games table: one row per distinct catalog entry
CREATE TABLE IF NOT EXISTS games (
    name            TEXT PRIMARY KEY,
    base64          TEXT NOT NULL,
    downloads       INTEGER NOT NULL DEFAULT 1,
    genres          TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL,
    screenshots_url TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    rating          TEXT NOT NULL DEFAULT '',
    platform        TEXT NOT NULL DEFAULT '',
    add_time        INTEGER NOT NULL,
    in_pack_man     BOOLEAN NOT NULL DEFAULT FALSE
);

-- The removal flow looks entries up by their encoded source key
CREATE INDEX IF NOT EXISTS idx_games_base64 ON games(base64);
`

// genreDelimiter joins genre tags in the stored column, so a tag must
// never contain it.
const genreDelimiter = ","
