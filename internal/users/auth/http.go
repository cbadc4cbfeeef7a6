// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// Handler exposes the handshake over HTTP.
type Handler struct {
	service *Service
}

// NewHandler wires the handler to the service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /auth. Both endpoints are anonymous.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)
	return router
}

/*
POST /api/v1/auth/signup.

Response:
  - 200: SignupInput echoed back
  - 400: validation failure
  - 429: a code was mailed to this address moments ago
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	echoed, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, echoed)
}

/*
POST /api/v1/auth/token.

Response:
  - 200: {"token": "..."}
  - 400: missing fields, or the code is wrong or already used
  - 404: unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.Token(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token)
}
