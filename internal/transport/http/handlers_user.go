package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/service"
)

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID().String(),
		FirstName: u.FirstName().String(),
		LastName:  u.LastName().String(),
		Email:     u.Email().String(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt().Format(time.RFC3339),
	}
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateUserCommand
	if !s.readJSON(w, r, &cmd) {
		return
	}

	res, err := s.handlers.CreateUser.Execute(r.Context(), cmd)
	if u, ok := res.Get(); ok && err == nil {
		w.Header().Set("Location", "/api/v1/users/"+u.ID().String())
	}
	respond(s, w, r, res, err, http.StatusCreated, toUserResponse)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	res, err := s.handlers.GetUser.Execute(r.Context(), service.GetUserQuery{ID: chi.URLParam(r, "id")})
	respond(s, w, r, res, err, http.StatusOK, toUserResponse)
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var q service.AuthenticateUserQuery
	if !s.readJSON(w, r, &q) {
		return
	}

	res, err := s.handlers.AuthenticateUser.Execute(r.Context(), q)
	respond(s, w, r, res, err, http.StatusOK, toUserResponse)
}
