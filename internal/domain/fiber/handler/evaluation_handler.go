package handler

import (
	"time"

	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/Prateeks16/interview-pilot/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EvaluationHandler struct {
	uc *usecase.EvaluationUsecase
}

func NewEvaluationHandler(uc *usecase.EvaluationUsecase) *EvaluationHandler {
	return &EvaluationHandler{uc: uc}
}

func (h *EvaluationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/evaluation/trigger/:session_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		middleware.RateLimiter(10, time.Minute),
		h.Trigger)
	// The external scorer calls back here; it carries no user identity.
	app.Post("/evaluation/webhook", h.Webhook)
	app.Get("/evaluation/review/:session_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Review)
}

func (h *EvaluationHandler) Trigger(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	result, err := h.uc.Trigger(c.UserContext(), sessionID)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Evaluation dispatched",
		Data:    result,
	})
}

func (h *EvaluationHandler) Webhook(c *fiber.Ctx) error {
	result, err := h.uc.HandleCallback(c.Body())
	if err != nil {
		return util.AppError(c, err)
	}
	// Raw shape, not the envelope: the scorer only looks at "status".
	return c.JSON(result)
}

func (h *EvaluationHandler) Review(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	review, err := h.uc.Review(sessionID)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get performance review",
		Data: dto.PerformanceReviewDTO{
			ID:           review.ID,
			SessionID:    review.SessionID,
			OverallScore: review.OverallScore,
			Strengths:    review.Strengths,
			Weakness:     review.Weakness,
			CreatedAt:    review.CreatedAt,
		},
	})
}
