package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// GetEvaluationChat retrieves a role's saved chat transcript. A role
// with no saved chat yields an empty slice.
func (db *DB) GetEvaluationChat(ctx context.Context, roleID uuid.UUID) ([]types.Message, error) {
	var messagesJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT messages FROM evaluation_chats WHERE role_id = $1`, roleID,
	).Scan(&messagesJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation chat: %w", err)
	}

	var messages []types.Message
	if len(messagesJSON) > 0 {
		if err := json.Unmarshal(messagesJSON, &messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat messages: %w", err)
		}
	}
	return messages, nil
}

// SaveEvaluationChat upserts a role's chat transcript.
func (db *DB) SaveEvaluationChat(ctx context.Context, roleID uuid.UUID, messages []types.Message) error {
	if messages == nil {
		messages = []types.Message{}
	}
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat messages: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO evaluation_chats (role_id, messages)
		 VALUES ($1, $2)
		 ON CONFLICT (role_id) DO UPDATE SET messages = $2, updated_at = NOW()`,
		roleID, messagesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation chat: %w", err)
	}
	return nil
}

// DeleteEvaluationChat removes a role's chat transcript. Deleting an
// absent chat is not an error.
func (db *DB) DeleteEvaluationChat(ctx context.Context, roleID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM evaluation_chats WHERE role_id = $1`, roleID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation chat: %w", err)
	}
	return nil
}
