package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/gftan/agentic-recruiter/internal/db"
	"github.com/gftan/agentic-recruiter/internal/types"
)

// Store is the persistence surface the handlers depend on. *db.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	// Roles
	CreateRole(ctx context.Context, title, status, createdBy string) (*types.Role, error)
	GetRole(ctx context.Context, roleID uuid.UUID) (*types.Role, error)
	ListRoles(ctx context.Context) ([]types.Role, error)
	UpdateRole(ctx context.Context, roleID uuid.UUID, req types.RoleUpdateRequest) (*types.Role, error)
	DeleteRole(ctx context.Context, roleID uuid.UUID) error
	GetRoleCounts(ctx context.Context, roleID uuid.UUID) (*types.RoleCounts, error)

	// Candidates
	CreateCandidate(ctx context.Context, roleID uuid.UUID, name, summary string, skills []string, experience string) (*types.Candidate, error)
	GetCandidate(ctx context.Context, roleID, candidateID uuid.UUID) (*types.Candidate, error)
	ListCandidates(ctx context.Context, roleID uuid.UUID) ([]types.Candidate, error)
	DeleteCandidate(ctx context.Context, roleID, candidateID uuid.UUID) error
	UpdateCandidateStatus(ctx context.Context, roleID, candidateID uuid.UUID, patch types.StatusPatch) error

	// Interviews
	GetInterview(ctx context.Context, roleID, candidateID uuid.UUID) (*types.Interview, error)
	SaveInterview(ctx context.Context, iv *types.Interview) error

	// Evaluation chats
	GetEvaluationChat(ctx context.Context, roleID uuid.UUID) ([]types.Message, error)
	SaveEvaluationChat(ctx context.Context, roleID uuid.UUID, messages []types.Message) error
	DeleteEvaluationChat(ctx context.Context, roleID uuid.UUID) error

	// Users
	CreateUser(ctx context.Context, email, role, passwordHash string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*db.User, error)
	CountUsers(ctx context.Context) (int, error)
}
