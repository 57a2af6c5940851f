package store

const (
	createLocalSchema = `
		CREATE TABLE IF NOT EXISTS documents (
			kind       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS quotes (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			data        TEXT NOT NULL,
			updated_at  INTEGER NOT NULL DEFAULT 0,
			device_id   TEXT NOT NULL DEFAULT '',
			conflict    INTEGER NOT NULL DEFAULT 0,
			original_id TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS sync_meta (
			key        TEXT PRIMARY KEY,
			last_sync  INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`

	getLocalDocument = `
		SELECT payload
		FROM documents
		WHERE kind = ?;`

	setLocalDocument = `
		INSERT INTO documents (kind, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at;`

	getLocalQuotes = `
		SELECT id, name, data, updated_at, device_id, conflict, original_id
		FROM quotes;`

	deleteAllLocalQuotes = `DELETE FROM quotes;`

	insertLocalQuote = `
		INSERT INTO quotes (id, name, data, updated_at, device_id, conflict, original_id)
		VALUES (?, ?, ?, ?, ?, ?, ?);`

	getWatermark = `
		SELECT last_sync
		FROM sync_meta
		WHERE key = ?;`

	setWatermark = `
		INSERT INTO sync_meta (key, last_sync)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			last_sync = excluded.last_sync;`

	clearWatermarks = `DELETE FROM sync_meta;`

	getMetaValue = `
		SELECT value
		FROM meta
		WHERE key = ?;`

	setMetaValue = `
		INSERT INTO meta (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value;`
)
