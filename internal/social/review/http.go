// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/core/title"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
)

// URL parameters below the title.
const (
	ParamReviewID  = "reviewID"
	ParamCommentID = "commentID"
)

// # Handler Implementation

// Handler exposes reviews and comments over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /titles/{titleID}/reviews.
//
//	GET    /                                list reviews
//	POST   /                                create review (authenticated)
//	GET    /{reviewID}                      retrieve review
//	PUT    /{reviewID}                      replace review (author or staff)
//	PATCH  /{reviewID}                      partial update (author or staff)
//	DELETE /{reviewID}                      delete review (author or staff)
//	GET    /{reviewID}/comments             list comments
//	POST   /{reviewID}/comments             create comment (authenticated)
//	GET    /{reviewID}/comments/{commentID} retrieve comment
//	PUT    /{reviewID}/comments/{commentID} update comment (author or staff)
//	PATCH  /{reviewID}/comments/{commentID} update comment (author or staff)
//	DELETE /{reviewID}/comments/{commentID} delete comment (author or staff)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)

	router.Route("/{reviewID}", func(router chi.Router) {
		router.Get("/", handler.getReview)
		router.Put("/", handler.updateReview(false))
		router.Patch("/", handler.updateReview(true))
		router.Delete("/", handler.deleteReview)

		router.Get("/comments", handler.listComments)
		router.Post("/comments", handler.createComment)
		router.Get("/comments/{commentID}", handler.getComment)
		router.Put("/comments/{commentID}", handler.updateComment)
		router.Patch("/comments/{commentID}", handler.updateComment)
		router.Delete("/comments/{commentID}", handler.deleteComment)
	})

	return router
}

// path holds the parsed ids of a nested request.
type path struct {
	titleID   int64
	reviewID  int64
	commentID int64
}

// parsePath reads the ids present in the route. Non-numeric ids are reported as missing resources.
func parsePath(request *http.Request, withReview, withComment bool) (path, error) {
	var (
		parsed path
		err    error
	)

	if parsed.titleID, err = requestutil.ID(request, title.ParamTitleID, "Title"); err != nil {
		return parsed, err
	}
	if withReview {
		if parsed.reviewID, err = requestutil.ID(request, ParamReviewID, "Review"); err != nil {
			return parsed, err
		}
	}
	if withComment {
		if parsed.commentID, err = requestutil.ID(request, ParamCommentID, "Comment"); err != nil {
			return parsed, err
		}
	}
	return parsed, nil
}
