package queue

// schemaVersion tracks the on-disk layout. Bump when columns change; there is
// no migration path across versions, old databases must be cleared.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
    id                 TEXT PRIMARY KEY,
    status             TEXT NOT NULL,
    instruction        TEXT NOT NULL,
    target_url         TEXT NOT NULL,
    concept_id         TEXT NOT NULL DEFAULT '',
    styling_json       TEXT,
    credentials_sealed BLOB,
    timeline_json      TEXT,
    raw_recording_path TEXT NOT NULL DEFAULT '',
    final_video_path   TEXT NOT NULL DEFAULT '',
    error_message      TEXT NOT NULL DEFAULT '',
    progress_stage     TEXT NOT NULL DEFAULT '',
    progress_percent   REAL NOT NULL DEFAULT 0,
    created_at         TEXT NOT NULL,
    updated_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at);
`
