// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huguryildiz/senior-design-jury/models"
)

// RecordLog is the append-only record log collaborator. It exposes exactly
// two operations, Append and Query; there is no update and no delete. All
// write conflict handling lives in the reconciliation engine, which merges
// whatever the log has accumulated.
type RecordLog struct {
	db *sql.DB
}

// NewRecordLog wraps an open database connection.
func NewRecordLog(db *sql.DB) *RecordLog {
	return &RecordLog{db: db}
}

// Filter narrows a Query. Zero-value fields are unconstrained, so the
// zero Filter returns the whole log (admin aggregate views).
type Filter struct {
	IdentityID string
	GroupID    string
}

// Append inserts records into the log. Records are stored verbatim,
// including a malformed recorded_at or an empty score set; candidacy
// filtering is the reconciliation engine's job, not the log's.
func (l *RecordLog) Append(records []models.EvaluationRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin append: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		scores, err := json.Marshal(rec.Scores)
		if err != nil {
			return fmt.Errorf("failed to encode scores for record %s: %w", rec.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO evaluation_record (id, identity_id, group_id, recorded_at, scores, comment, status, editing_flag, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, rec.ID, rec.IdentityID, rec.GroupID, rec.RecordedAt, string(scores), rec.Comment, rec.Status, rec.EditingFlag, time.Now())
		if err != nil {
			return fmt.Errorf("failed to append record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit append: %w", err)
	}
	return nil
}

// Query returns the raw, unreconciled log matching the filter. A stored
// scores column that fails to parse yields a record with nil Scores rather
// than an error; such records can never win reconciliation but must not
// break reads for everyone else.
func (l *RecordLog) Query(f Filter) ([]models.EvaluationRecord, error) {
	q := `
		SELECT id, identity_id, group_id, recorded_at, scores, comment, status, editing_flag
		FROM evaluation_record
	`
	var args []any
	switch {
	case f.IdentityID != "" && f.GroupID != "":
		q += ` WHERE identity_id = $1 AND group_id = $2`
		args = []any{f.IdentityID, f.GroupID}
	case f.IdentityID != "":
		q += ` WHERE identity_id = $1`
		args = []any{f.IdentityID}
	case f.GroupID != "":
		q += ` WHERE group_id = $1`
		args = []any{f.GroupID}
	}
	q += ` ORDER BY id`

	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query record log: %w", err)
	}
	defer rows.Close()

	var records []models.EvaluationRecord
	for rows.Next() {
		var rec models.EvaluationRecord
		var scoresText string
		if err := rows.Scan(&rec.ID, &rec.IdentityID, &rec.GroupID, &rec.RecordedAt,
			&scoresText, &rec.Comment, &rec.Status, &rec.EditingFlag); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(scoresText), &rec.Scores); err != nil {
			rec.Scores = nil
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
