// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Handler Implementation

// Handler exposes categories and genres over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CategoryRoutes mounts under /categories.
//
//	GET    /             list (search, page, limit)
//	POST   /             create (admin)
//	GET    /{slug}       retrieve
//	PUT    /{slug}       replace (admin)
//	PATCH  /{slug}       partial update (admin)
//	DELETE /{slug}       delete (admin)
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list(KindCategory))
	router.Post("/", handler.create(KindCategory))
	router.Get("/{slug}", handler.get(KindCategory))
	router.Put("/{slug}", handler.update(KindCategory, false))
	router.Patch("/{slug}", handler.update(KindCategory, true))
	router.Delete("/{slug}", handler.delete(KindCategory))
	return router
}

// GenreRoutes mounts under /genres. Genres are listed, created and deleted only.
func (handler *Handler) GenreRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list(KindGenre))
	router.Post("/", handler.create(KindGenre))
	router.Delete("/{slug}", handler.delete(KindGenre))
	return router
}

/*
GET /api/v1/{categories|genres}.

Request:
  - search: string (name substring, case-insensitive)
  - page, limit: int

Response:
  - 200: []Entry (paginated)
*/
func (handler *Handler) list(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params := pagination.FromRequest(request)
		filter := Filter{Search: request.URL.Query().Get("search")}

		entries, total, err := handler.service.List(request.Context(), kind, filter, params.Limit, params.Offset())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
	}
}

/*
POST /api/v1/{categories|genres}.

Request: {"name": string, "slug": string?}

Response:
  - 201: Entry
  - 400: validation error
  - 401/403: not an admin
*/
func (handler *Handler) create(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input Input
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entry, err := handler.service.Create(request.Context(), requestutil.Subject(request), kind, input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Created(writer, entry)
	}
}

// GET /api/v1/categories/{slug}.
func (handler *Handler) get(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		entry, err := handler.service.Get(request.Context(), kind, requestutil.Param(request, "slug"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entry)
	}
}

// PUT|PATCH /api/v1/categories/{slug}.
func (handler *Handler) update(kind Kind, partial bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input Input
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entry, err := handler.service.Update(request.Context(), requestutil.Subject(request), kind,
			requestutil.Param(request, "slug"), input, partial)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, entry)
	}
}

// DELETE /api/v1/{categories|genres}/{slug}.
func (handler *Handler) delete(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		err := handler.service.Delete(request.Context(), requestutil.Subject(request), kind, requestutil.Param(request, "slug"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}
