// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/query"
)

// ParamTitleID is the URL parameter holding a title id, shared with nested routes.
const ParamTitleID = "titleID"

// # Handler Implementation

// Handler exposes titles over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /titles.
//
//	GET    /            list (name, year, genre, category, page, limit)
//	POST   /            create (admin)
//	GET    /{titleID}   retrieve
//	PUT    /{titleID}   replace (admin)
//	PATCH  /{titleID}   partial update (admin)
//	DELETE /{titleID}   delete (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{titleID}", handler.get)
	router.Put("/{titleID}", handler.update(false))
	router.Patch("/{titleID}", handler.update(true))
	router.Delete("/{titleID}", handler.delete)
	return router
}

/*
GET /api/v1/titles.

Request:
  - name: string (substring, case-insensitive)
  - year: int
  - genre, category: slug
  - page, limit: int

Response:
  - 200: []Title (paginated)
  - 400: year is not a number
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	year, err := query.Int(values, FieldYear)
	if err != nil {
		respond.Error(writer, request, apperr.Invalid(FieldYear, "Enter a whole number"))
		return
	}

	filter := Filter{
		Name:     query.String(values, FieldName),
		Year:     year,
		Genre:    query.String(values, FieldGenre),
		Category: query.String(values, FieldCategory),
	}

	params := pagination.FromRequest(request)
	titles, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/titles.

Request: {"name", "year", "description"?, "genre": [slug]?, "category": slug?}

Response:
  - 201: Title
  - 400: validation error
  - 401/403: not an admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), requestutil.Subject(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// GET /api/v1/titles/{titleID}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, ParamTitleID, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// PUT|PATCH /api/v1/titles/{titleID}.
func (handler *Handler) update(partial bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, ParamTitleID, "Title")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input Input
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		title, err := handler.service.Update(request.Context(), requestutil.Subject(request), id, input, partial)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, title)
	}
}

// DELETE /api/v1/titles/{titleID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, ParamTitleID, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Subject(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
