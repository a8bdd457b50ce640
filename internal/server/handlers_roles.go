package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// roleListing is a role plus its pipeline counts, as returned by the
// listing endpoint.
type roleListing struct {
	types.Role
	Counts *types.RoleCounts `json:"counts,omitempty"`
}

// handleListRoles returns all roles, newest first, each with its
// pipeline counts.
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.store.ListRoles(r.Context())
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	listings := make([]roleListing, 0, len(roles))
	for _, role := range roles {
		counts, err := s.store.GetRoleCounts(r.Context(), role.ID)
		if err != nil {
			// Listing still renders without counts.
			s.logger.Warn("failed to load role counts",
				zap.String("role_id", role.ID.String()), zap.Error(err))
		}
		listings = append(listings, roleListing{Role: role, Counts: counts})
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": listings})
}

// handleCreateRole creates a new role.
func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req types.RoleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	createdBy := ""
	if userID, ok := userIDFromContext(r.Context()); ok {
		createdBy = userID.String()
	}

	role, err := s.store.CreateRole(r.Context(), req.Title, req.Status, createdBy)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

// handleGetRole returns one role.
func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	role, err := s.store.GetRole(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}
	writeJSON(w, http.StatusOK, role)
}

// handleUpdateRole applies a partial role update.
func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.RoleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role, err := s.store.UpdateRole(r.Context(), roleID, req)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}
	writeJSON(w, http.StatusOK, role)
}

// handleDeleteRole removes a role along with its candidates and chat.
func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	// Drop any buffered chat first so a pending flush cannot recreate
	// rows for the deleted role.
	if err := s.chats.Release(r.Context(), roleID); err != nil {
		s.logger.Warn("failed to release chat persister",
			zap.String("role_id", roleID.String()), zap.Error(err))
	}

	if err := s.store.DeleteRole(r.Context(), roleID); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Role deleted"})
}

// handleRoleCounts summarizes a role's pipeline.
func (s *Server) handleRoleCounts(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	counts, err := s.store.GetRoleCounts(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
