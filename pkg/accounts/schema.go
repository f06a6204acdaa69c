package accounts

// Schema contains the SQL statements to create the accounts database schema.
const Schema = `
-- Accounts table: one row per maintainer, each with its own hash scheme
CREATE TABLE IF NOT EXISTS accounts (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    hash_algo     TEXT NOT NULL,
    rehash_count  INTEGER NOT NULL,
    removable     BOOLEAN NOT NULL DEFAULT TRUE
);
`
