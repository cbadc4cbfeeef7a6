// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/access"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/query"
)

// Handler exposes accounts over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AdminRoutes mounts under /users.
//
//	GET    /me          own account (authenticated)
//	PATCH  /me          edit own account, role ignored
//	GET    /            list (admin; search, page, limit)
//	POST   /            create with any role (admin)
//	GET    /{username}  retrieve (admin)
//	PUT    /{username}  replace (admin)
//	PATCH  /{username}  partial update (admin)
//	DELETE /{username}  delete (admin)
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)

	router.Get("/", handler.list(access.KindUserAdmin))
	router.Post("/", handler.create)
	router.Get("/{username}", handler.get(access.KindUserAdmin))
	router.Put("/{username}", handler.update(access.KindUserAdmin, false))
	router.Patch("/{username}", handler.update(access.KindUserAdmin, true))
	router.Delete("/{username}", handler.delete)

	return router
}

// DirectoryRoutes mounts under /moderation/users. Staff only; role changes need an admin.
func (handler *Handler) DirectoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list(access.KindUserDirectory))
	router.Get("/{username}", handler.get(access.KindUserDirectory))
	router.Put("/{username}", handler.update(access.KindUserDirectory, false))
	router.Patch("/{username}", handler.update(access.KindUserDirectory, true))
	return router
}

// # Self Service

/*
GET /api/v1/users/me.

Response:
  - 200: User
  - 401: anonymous
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Me(request.Context(), requestutil.Subject(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Request: any of {"username", "email", "first_name", "last_name", "bio"}. "role" is ignored.

Response:
  - 200: User
  - 400: validation error
  - 401: anonymous
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateMe(request.Context(), requestutil.Subject(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Management

// GET /api/v1/users and /api/v1/moderation/users.
func (handler *Handler) list(surface access.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params := pagination.FromRequest(request)
		filter := Filter{Search: query.String(request.URL.Query(), "search")}

		users, total, err := handler.service.List(request.Context(), requestutil.Subject(request), surface, filter, params.Limit, params.Offset())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
	}
}

/*
POST /api/v1/users.

Request: {"username", "email", "first_name"?, "last_name"?, "bio"?, "role"?}

Response:
  - 201: User
  - 400: validation error
  - 401/403: not an admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), requestutil.Subject(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// GET /api/v1/{users|moderation/users}/{username}.
func (handler *Handler) get(surface access.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		user, err := handler.service.Get(request.Context(), requestutil.Subject(request), surface, requestutil.Param(request, "username"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, user)
	}
}

// PUT|PATCH /api/v1/{users|moderation/users}/{username}.
func (handler *Handler) update(surface access.Kind, partial bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input Input
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.service.Update(request.Context(), requestutil.Subject(request), surface,
			requestutil.Param(request, "username"), input, partial)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, user)
	}
}

// DELETE /api/v1/users/{username}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), requestutil.Subject(request), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
