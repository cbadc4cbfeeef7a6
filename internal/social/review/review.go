// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages user reviews of titles and the comments under them.

# Core Responsibility

  - Reviews: one per (title, author), scored 1 to 10. The score feeds the title rating.
  - Comments: free text threads attached to a review.

Both resources are nested: a review is addressed through its title and a
comment through its title and review. A review or comment reached through
the wrong parent does not exist.

Authors may edit and remove their own content; moderators and admins may
edit and remove anyone's.
*/
package review

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// # Entities

// Review is a scored opinion of one author about one title.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// ReviewInput is the create/update payload. Nil fields were not sent.
type ReviewInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// # Errors

// ErrReviewExists is returned when the author already reviewed the title.
// The pre-check and the storage constraint report the same error.
var ErrReviewExists = apperr.ValidationError("You have already reviewed this title")

// ErrAuthorGone is returned when the author's account was deleted while writing.
var ErrAuthorGone = apperr.Unauthorized("User no longer exists")

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)
