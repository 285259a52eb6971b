// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/filmdeck/internal/platform/request"
	"github.com/taibuivan/filmdeck/internal/platform/respond"
)

// Handler serves a [Source] in the remote film service's own schema, so one
// Filmdeck instance can act as the film service of another.
type Handler struct {
	source Source
}

// NewHandler creates the catalogue API handler.
func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

// Routes returns the catalogue router, mounted under /api/v1.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/movies", handler.listFilms)
	router.Get("/comments/{filmID}", handler.listComments)
	return router
}

func (handler *Handler) listFilms(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.source.Films(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if records == nil {
		records = []FilmRecord{}
	}
	respond.JSON(writer, http.StatusOK, records)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.source.Comments(request.Context(), requestutil.Param(request, "filmID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if records == nil {
		records = []CommentRecord{}
	}
	respond.JSON(writer, http.StatusOK, records)
}
