package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gftan/agentic-recruiter/internal/types"
)

const candidateColumns = `id, role_id, name, summary, skills, experience, pipeline_column, color,
	outreach_sent, outreach_message, checklist, not_pushing_forward, sent_to_client,
	created_at, updated_at`

// CreateCandidate inserts a new candidate into the outreach column and
// returns the stored record.
func (db *DB) CreateCandidate(ctx context.Context, roleID uuid.UUID, name, summary string, skills []string, experience string) (*types.Candidate, error) {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (role_id, name, summary, skills, experience)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+candidateColumns,
		roleID, name, summary, skillsJSON, experience,
	)
	cand, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return cand, nil
}

// GetCandidate retrieves one candidate. Returns (nil, nil) when absent.
func (db *DB) GetCandidate(ctx context.Context, roleID, candidateID uuid.UUID) (*types.Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE role_id = $1 AND id = $2`,
		roleID, candidateID,
	)
	cand, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return cand, nil
}

// ListCandidates retrieves a role's candidates in board order.
func (db *DB) ListCandidates(ctx context.Context, roleID uuid.UUID) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE role_id = $1`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		cand, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	types.SortCandidates(candidates)
	return candidates, nil
}

// DeleteCandidate removes a candidate and, via cascade, its interview.
func (db *DB) DeleteCandidate(ctx context.Context, roleID, candidateID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM candidates WHERE role_id = $1 AND id = $2`,
		roleID, candidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", candidateID)
	}
	return nil
}

// UpdateCandidateStatus applies a partial status update. Only fields
// present in the patch are written.
func (db *DB) UpdateCandidateStatus(ctx context.Context, roleID, candidateID uuid.UUID, patch types.StatusPatch) error {
	query := `UPDATE candidates SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if patch.Column != nil {
		query += fmt.Sprintf(", pipeline_column = $%d", argNum)
		args = append(args, string(*patch.Column))
		argNum++
	}
	if patch.Color != nil {
		query += fmt.Sprintf(", color = $%d", argNum)
		args = append(args, *patch.Color)
		argNum++
	}
	if patch.OutreachSent != nil {
		query += fmt.Sprintf(", outreach_sent = $%d", argNum)
		args = append(args, *patch.OutreachSent)
		argNum++
	}
	if patch.OutreachMessage != nil {
		query += fmt.Sprintf(", outreach_message = $%d", argNum)
		args = append(args, *patch.OutreachMessage)
		argNum++
	}
	if patch.NotPushingForward != nil {
		query += fmt.Sprintf(", not_pushing_forward = $%d", argNum)
		args = append(args, *patch.NotPushingForward)
		argNum++
	}
	if patch.SentToClient != nil {
		query += fmt.Sprintf(", sent_to_client = $%d", argNum)
		args = append(args, *patch.SentToClient)
		argNum++
	}
	if patch.Checklist != nil {
		checklistJSON, err := json.Marshal(patch.Checklist)
		if err != nil {
			return fmt.Errorf("failed to marshal checklist: %w", err)
		}
		query += fmt.Sprintf(", checklist = $%d", argNum)
		args = append(args, checklistJSON)
		argNum++
	}

	query += fmt.Sprintf(" WHERE role_id = $%d AND id = $%d", argNum, argNum+1)
	args = append(args, roleID, candidateID)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", candidateID)
	}
	return nil
}

func scanCandidate(row pgx.Row) (*types.Candidate, error) {
	var c types.Candidate
	var skillsJSON, checklistJSON []byte
	var column string

	err := row.Scan(&c.ID, &c.RoleID, &c.Name, &c.Summary, &skillsJSON, &c.Experience,
		&column, &c.Color, &c.OutreachSent, &c.OutreachMessage, &checklistJSON,
		&c.NotPushingForward, &c.SentToClient, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Column = types.NormalizeColumn(types.Column(column))
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &c.Skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}
	if len(checklistJSON) > 0 {
		if err := json.Unmarshal(checklistJSON, &c.Checklist); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checklist: %w", err)
		}
	}
	return &c, nil
}
