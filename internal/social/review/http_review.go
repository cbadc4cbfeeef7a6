// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

/*
GET /api/v1/titles/{titleID}/reviews.

Response:
  - 200: []Review (paginated, newest first)
  - 404: title not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, false, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.ListReviews(request.Context(), ids.titleID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/titles/{titleID}/reviews.

Request: {"text": string, "score": 1..10}

Response:
  - 201: Review
  - 400: validation error or a second review of the same title
  - 401: anonymous
  - 404: title not found
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, false, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), requestutil.Subject(request), ids.titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// GET /api/v1/titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), ids.titleID, ids.reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// PUT|PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) updateReview(partial bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ids, err := parsePath(request, true, false)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input ReviewInput
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		review, err := handler.service.UpdateReview(request.Context(), requestutil.Subject(request),
			ids.titleID, ids.reviewID, input, partial)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, review)
	}
}

// DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), requestutil.Subject(request), ids.titleID, ids.reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
