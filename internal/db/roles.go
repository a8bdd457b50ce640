package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gftan/agentic-recruiter/internal/types"
)

const roleColumns = `id, title, status, hiring_budget, vacancies, urgency, timeline,
	candidate_requirement_fields, evaluation_criteria, created_by_user_id, created_at, updated_at`

// CreateRole inserts a new role and returns the stored record.
func (db *DB) CreateRole(ctx context.Context, title, status, createdBy string) (*types.Role, error) {
	if status == "" {
		status = "active"
	}
	row := db.pool.QueryRow(ctx,
		`INSERT INTO roles (title, status, created_by_user_id)
		 VALUES ($1, $2, $3)
		 RETURNING `+roleColumns,
		title, status, createdBy,
	)
	role, err := scanRole(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// GetRole retrieves one role. Returns (nil, nil) when absent.
func (db *DB) GetRole(ctx context.Context, roleID uuid.UUID) (*types.Role, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = $1`, roleID,
	)
	role, err := scanRole(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// ListRoles retrieves all roles, newest first.
func (db *DB) ListRoles(ctx context.Context) ([]types.Role, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+roleColumns+` FROM roles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []types.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// UpdateRole applies a partial update. Only non-nil fields are written.
func (db *DB) UpdateRole(ctx context.Context, roleID uuid.UUID, req types.RoleUpdateRequest) (*types.Role, error) {
	query := `UPDATE roles SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if req.Title != nil {
		query += fmt.Sprintf(", title = $%d", argNum)
		args = append(args, *req.Title)
		argNum++
	}
	if req.Status != nil {
		query += fmt.Sprintf(", status = $%d", argNum)
		args = append(args, *req.Status)
		argNum++
	}
	if req.HiringBudget != nil {
		query += fmt.Sprintf(", hiring_budget = $%d", argNum)
		args = append(args, *req.HiringBudget)
		argNum++
	}
	if req.Vacancies != nil {
		query += fmt.Sprintf(", vacancies = $%d", argNum)
		args = append(args, *req.Vacancies)
		argNum++
	}
	if req.Urgency != nil {
		query += fmt.Sprintf(", urgency = $%d", argNum)
		args = append(args, *req.Urgency)
		argNum++
	}
	if req.Timeline != nil {
		query += fmt.Sprintf(", timeline = $%d", argNum)
		args = append(args, *req.Timeline)
		argNum++
	}
	if req.CandidateRequirementFields != nil {
		fieldsJSON, err := json.Marshal(req.CandidateRequirementFields)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal requirement fields: %w", err)
		}
		query += fmt.Sprintf(", candidate_requirement_fields = $%d", argNum)
		args = append(args, fieldsJSON)
		argNum++
	}
	if req.EvaluationCriteria != nil {
		criteriaJSON, err := json.Marshal(req.EvaluationCriteria)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal evaluation criteria: %w", err)
		}
		query += fmt.Sprintf(", evaluation_criteria = $%d", argNum)
		args = append(args, criteriaJSON)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argNum, roleColumns)
	args = append(args, roleID)

	row := db.pool.QueryRow(ctx, query, args...)
	role, err := scanRole(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

// DeleteRole removes a role and, via cascade, its candidates,
// interviews, and evaluation chat.
func (db *DB) DeleteRole(ctx context.Context, roleID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("role not found: %s", roleID)
	}
	return nil
}

// GetRoleCounts summarizes a role's pipeline in one aggregate query.
func (db *DB) GetRoleCounts(ctx context.Context, roleID uuid.UUID) (*types.RoleCounts, error) {
	var counts types.RoleCounts
	err := db.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE pipeline_column = 'outreach'),
			COUNT(*) FILTER (WHERE pipeline_column = 'follow-up'),
			COUNT(*) FILTER (WHERE pipeline_column = 'evaluation'),
			COUNT(*) FILTER (WHERE sent_to_client),
			COUNT(*) FILTER (WHERE not_pushing_forward)
		 FROM candidates WHERE role_id = $1`,
		roleID,
	).Scan(&counts.Outreach, &counts.FollowUp, &counts.Evaluation,
		&counts.SentToClient, &counts.NotPushingForward)
	if err != nil {
		return nil, fmt.Errorf("failed to get role counts: %w", err)
	}
	return &counts, nil
}

func scanRole(row pgx.Row) (*types.Role, error) {
	var r types.Role
	var fieldsJSON, criteriaJSON []byte

	err := row.Scan(&r.ID, &r.Title, &r.Status, &r.HiringBudget, &r.Vacancies,
		&r.Urgency, &r.Timeline, &fieldsJSON, &criteriaJSON, &r.CreatedBy,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &r.CandidateRequirementFields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirement fields: %w", err)
		}
	}
	if len(criteriaJSON) > 0 {
		if err := json.Unmarshal(criteriaJSON, &r.EvaluationCriteria); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evaluation criteria: %w", err)
		}
	}
	return &r, nil
}
