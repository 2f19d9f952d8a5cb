// Package db persists operational audit data: model load events and
// per-prediction verdict rows. Submitted water parameters are deliberately
// never stored.
package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB opens the SQLite database and creates the schema.
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS model_loads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        version TEXT NOT NULL,
        path TEXT NOT NULL,
        feature_count INTEGER NOT NULL,
        tree_count INTEGER NOT NULL,
        loaded_at DATETIME NOT NULL
    );
    CREATE TABLE IF NOT EXISTS prediction_audit (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        model_version TEXT NOT NULL,
        verdict TEXT NOT NULL,
        confidence REAL NOT NULL,
        duration_ms REAL NOT NULL,
        created_at DATETIME NOT NULL
    );
    `
	_, err = database.Exec(query)
	return err
}

// CloseDB closes the database handle.
func CloseDB() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// RecordModelLoad logs a successful artifact load.
func RecordModelLoad(version, path string, featureCount, treeCount int) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT INTO model_loads (version, path, feature_count, tree_count, loaded_at)
        VALUES (?, ?, ?, ?, ?)`,
		version, path, featureCount, treeCount, time.Now().UTC())
	return err
}

// RecordPrediction logs one completed prediction. Only the verdict surface
// is stored, never the submitted parameters.
func RecordPrediction(modelVersion, verdict string, confidence float64, duration time.Duration) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT INTO prediction_audit (model_version, verdict, confidence, duration_ms, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		modelVersion, verdict, confidence, float64(duration.Microseconds())/1000, time.Now().UTC())
	return err
}

// AuditSummary aggregates the prediction audit log.
type AuditSummary struct {
	Total         int64   `json:"total"`
	Safe          int64   `json:"safe"`
	Unsafe        int64   `json:"unsafe"`
	AvgConfidence float64 `json:"avg_confidence"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// LoadAuditSummary aggregates the audit rows.
func LoadAuditSummary() (*AuditSummary, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	var summary AuditSummary
	err := database.QueryRow(`
        SELECT COUNT(*),
               COALESCE(SUM(CASE WHEN verdict = 'Safe' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN verdict = 'Unsafe' THEN 1 ELSE 0 END), 0),
               COALESCE(AVG(confidence), 0),
               COALESCE(AVG(duration_ms), 0)
        FROM prediction_audit`).Scan(
		&summary.Total, &summary.Safe, &summary.Unsafe,
		&summary.AvgConfidence, &summary.AvgDurationMs)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ModelLoad is one row of the model load log.
type ModelLoad struct {
	Version      string    `json:"version"`
	Path         string    `json:"path"`
	FeatureCount int       `json:"feature_count"`
	TreeCount    int       `json:"tree_count"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// LoadModelHistory returns the most recent model loads.
func LoadModelHistory(limit int) ([]ModelLoad, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := database.Query(`
        SELECT version, path, feature_count, tree_count, loaded_at
        FROM model_loads
        ORDER BY loaded_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]ModelLoad, 0)
	for rows.Next() {
		var load ModelLoad
		if err := rows.Scan(&load.Version, &load.Path, &load.FeatureCount, &load.TreeCount, &load.LoadedAt); err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}
	return loads, rows.Err()
}
