package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/service"
)

type gameResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Developer    string  `json:"developer"`
	Publisher    string  `json:"publisher"`
	Price        float64 `json:"price"`
	DiskSize     float64 `json:"diskSize"`
	AgeRating    string  `json:"ageRating"`
	ReleaseDate  string  `json:"releaseDate"`
	OfficialLink string  `json:"officialLink,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func toGameResponse(g *domain.Game) gameResponse {
	return gameResponse{
		ID:           g.ID().String(),
		Name:         g.Name().String(),
		Description:  g.Description().String(),
		Developer:    g.Developer().String(),
		Publisher:    g.Publisher().String(),
		Price:        g.Price().Amount(),
		DiskSize:     g.DiskSize().Gigabytes(),
		AgeRating:    g.AgeRating().String(),
		ReleaseDate:  g.ReleaseDate().Format(time.DateOnly),
		OfficialLink: g.OfficialLink(),
		CreatedAt:    g.CreatedAt().Format(time.RFC3339),
	}
}

type deletedResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateGameCommand
	if !s.readJSON(w, r, &cmd) {
		return
	}

	res, err := s.handlers.CreateGame.Execute(r.Context(), cmd)
	if g, ok := res.Get(); ok && err == nil {
		w.Header().Set("Location", "/api/v1/games/"+g.ID().String())
	}
	respond(s, w, r, res, err, http.StatusCreated, toGameResponse)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	res, err := s.handlers.GetGame.Execute(r.Context(), service.GetGameQuery{ID: chi.URLParam(r, "id")})
	respond(s, w, r, res, err, http.StatusOK, toGameResponse)
}

type changePriceRequest struct {
	Price float64 `json:"price"`
}

func (s *Server) handleChangeGamePrice(w http.ResponseWriter, r *http.Request) {
	var req changePriceRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	res, err := s.handlers.ChangeGamePrice.Execute(r.Context(), service.ChangeGamePriceCommand{
		ActorID: actorID(r),
		GameID:  chi.URLParam(r, "id"),
		Price:   req.Price,
	})
	respond(s, w, r, res, err, http.StatusOK, toGameResponse)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	res, err := s.handlers.DeleteGame.Execute(r.Context(), service.DeleteGameCommand{
		ActorID: actorID(r),
		GameID:  chi.URLParam(r, "id"),
	})
	respond(s, w, r, res, err, http.StatusOK, func(id uuid.UUID) deletedResponse {
		return deletedResponse{ID: id.String()}
	})
}
