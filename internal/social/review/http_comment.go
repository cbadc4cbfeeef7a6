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
GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Response:
  - 200: []Comment (paginated, newest first)
  - 404: review not found under this title
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.ListComments(request.Context(), ids.titleID, ids.reviewID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

// POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments.
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), requestutil.Subject(request), ids.titleID, ids.reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}.
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), ids.titleID, ids.reviewID, ids.commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// PUT|PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}.
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), requestutil.Subject(request),
		ids.titleID, ids.reviewID, ids.commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteComment(request.Context(), requestutil.Subject(request), ids.titleID, ids.reviewID, ids.commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
