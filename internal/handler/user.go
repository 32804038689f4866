package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/service"
)

// createUserRequest is the POST /users body.
type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// updateUserRequest is the PATCH /users/{userID} body; all fields optional.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// userResponse is the wire form of a user account.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// createUser handles POST /users.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := s.users.Create(r.Context(), domain.User{Name: body.Name, Email: body.Email})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(created))
}

// getUser handles GET /users/{userID}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeBadRequest(w, "user id must be a UUID")
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

// listUsers handles GET /users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// updateUser handles PATCH /users/{userID}.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeBadRequest(w, "user id must be a UUID")
		return
	}

	var body updateUserRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.users.Update(r.Context(), userID, service.UserUpdate{Name: body.Name, Email: body.Email})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(updated))
}

// deleteUser handles DELETE /users/{userID}.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeBadRequest(w, "user id must be a UUID")
		return
	}

	if err := s.users.Delete(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
