package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func reviewResponse(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

func reviewResponses(reviews []models.Review) []dto.ReviewResponse {
	out := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = reviewResponse(&reviews[i])
	}
	return out
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	if err := policy.Decide(policy.CreateOnceOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.List,
	}); err != nil {
		return err
	}

	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return err
	}

	reviews, page, err := h.reviewService.List(titleID, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(listEnvelope("reviews", reviewResponses(reviews), page))
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	if err := policy.Decide(policy.CreateOnceOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Retrieve,
	}); err != nil {
		return err
	}

	review, err := h.pathReview(c)
	if err != nil {
		return err
	}
	return c.JSON(reviewResponse(review))
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if err := policy.Decide(policy.CreateOnceOrReadOnly, policy.AuthContext{
		Actor: actor, Method: policy.Create,
	}); err != nil {
		return err
	}

	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	review, err := h.reviewService.Create(titleID, actor.ID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(reviewResponse(review))
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	review, err := h.pathReview(c)
	if err != nil {
		return err
	}

	if err := policy.Decide(policy.CreateOnceOrReadOnly, policy.AuthContext{
		Actor:    middleware.Actor(c),
		Method:   policy.Update,
		Resource: &policy.Resource{OwnerID: review.AuthorID},
	}); err != nil {
		return err
	}

	var req dto.ReviewUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	review, err = h.reviewService.Update(review, &req)
	if err != nil {
		return err
	}
	return c.JSON(reviewResponse(review))
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	review, err := h.pathReview(c)
	if err != nil {
		return err
	}

	if err := policy.Decide(policy.CreateOnceOrReadOnly, policy.AuthContext{
		Actor:    middleware.Actor(c),
		Method:   policy.Delete,
		Resource: &policy.Resource{OwnerID: review.AuthorID},
	}); err != nil {
		return err
	}

	if err := h.reviewService.Delete(review); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandler) pathReview(c *fiber.Ctx) (*models.Review, error) {
	titleID, err := uintParam(c, "title_id")
	if err != nil {
		return nil, err
	}
	reviewID, err := uintParam(c, "review_id")
	if err != nil {
		return nil, err
	}
	return h.reviewService.Get(titleID, reviewID)
}
