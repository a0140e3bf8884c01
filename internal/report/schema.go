package report

const schema = `
CREATE TABLE IF NOT EXISTS sequences (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    format TEXT NOT NULL,
    bit_depth INTEGER NOT NULL,
    UNIQUE(path, width, height, format, bit_depth)
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reference_id INTEGER NOT NULL,
    distorted_id INTEGER NOT NULL,
    metric TEXT NOT NULL,
    plane INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (reference_id) REFERENCES sequences(id) ON DELETE CASCADE,
    FOREIGN KEY (distorted_id) REFERENCES sequences(id) ON DELETE CASCADE
);

-- value is NULL for an infinite PSNR
CREATE TABLE IF NOT EXISTS measurements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    frame INTEGER NOT NULL,
    value REAL,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE,
    UNIQUE(run_id, frame)
);

CREATE INDEX IF NOT EXISTS idx_runs_metric ON runs(metric);
CREATE INDEX IF NOT EXISTS idx_measurements_run ON measurements(run_id);

CREATE VIEW IF NOT EXISTS run_summaries AS
SELECT
    r.id,
    ref.path AS reference_path,
    dist.path AS distorted_path,
    r.metric,
    r.plane,
    COUNT(m.id) AS frames,
    AVG(m.value) AS mean_value,
    MIN(m.value) AS min_value,
    MAX(m.value) AS max_value
FROM runs r
JOIN sequences ref ON r.reference_id = ref.id
JOIN sequences dist ON r.distorted_id = dist.id
LEFT JOIN measurements m ON m.run_id = r.id
GROUP BY r.id;
`
