package dto

import "time"

type ReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

type ReviewUpdateRequest struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

// ReviewResponse serializes the author as a username, matching the read
// shape of the comment endpoints.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentUpdateRequest struct {
	Text *string `json:"text" validate:"omitempty,min=1"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}
