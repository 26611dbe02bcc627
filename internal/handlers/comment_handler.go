package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func commentResponse(cm *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:      cm.ID,
		Text:    cm.Text,
		Author:  cm.Author.Username,
		PubDate: cm.PubDate,
	}
}

func commentResponses(comments []models.Comment) []dto.CommentResponse {
	out := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		out[i] = commentResponse(&comments[i])
	}
	return out
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AuthorOrModerAdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.List,
	}); err != nil {
		return err
	}

	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}

	comments, page, err := h.commentService.List(titleID, reviewID, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(listEnvelope("comments", commentResponses(comments), page))
}

func (h *CommentHandler) Get(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AuthorOrModerAdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Retrieve,
	}); err != nil {
		return err
	}

	comment, err := h.pathComment(c)
	if err != nil {
		return err
	}
	return c.JSON(commentResponse(comment))
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if err := policy.Decide(policy.AuthorOrModerAdminOrReadOnly, policy.AuthContext{
		Actor: actor, Method: policy.Create,
	}); err != nil {
		return err
	}

	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Create(titleID, reviewID, actor.ID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(commentResponse(comment))
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	comment, err := h.pathComment(c)
	if err != nil {
		return err
	}

	if err := policy.Decide(policy.AuthorOrModerAdminOrReadOnly, policy.AuthContext{
		Actor:    middleware.Actor(c),
		Method:   policy.Update,
		Resource: &policy.Resource{OwnerID: comment.AuthorID},
	}); err != nil {
		return err
	}

	var req dto.CommentUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err = h.commentService.Update(comment, &req)
	if err != nil {
		return err
	}
	return c.JSON(commentResponse(comment))
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	comment, err := h.pathComment(c)
	if err != nil {
		return err
	}

	if err := policy.Decide(policy.AuthorOrModerAdminOrReadOnly, policy.AuthContext{
		Actor:    middleware.Actor(c),
		Method:   policy.Delete,
		Resource: &policy.Resource{OwnerID: comment.AuthorID},
	}); err != nil {
		return err
	}

	if err := h.commentService.Delete(comment); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func reviewPath(c *fiber.Ctx) (uint, uint, error) {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := uintParam(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func (h *CommentHandler) pathComment(c *fiber.Ctx) (*models.Comment, error) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return nil, err
	}
	commentID, err := uintParam(c, "comment_id")
	if err != nil {
		return nil, err
	}
	return h.commentService.Get(titleID, reviewID, commentID)
}
