package handler

import (
	"fmt"

	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/Prateeks16/interview-pilot/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type QuestionHandler struct {
	uc *usecase.QuestionUsecase
}

func NewQuestionHandler(uc *usecase.QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{uc: uc}
}

func (h *QuestionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/interviews/:id/questions",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Add)
	app.Get("/interviews/:id/questions",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCandidate),
		h.List)
	app.Patch("/interviews/:id/questions/:question_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Update)
	app.Delete("/interviews/:id/questions/:question_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Delete)
	app.Post("/interviews/:id/generate_questions",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Generate)
}

func (h *QuestionHandler) Add(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	var body dto.CreateQuestionDTO
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question payload",
		}, err)
	}

	question, err := h.uc.Add(middleware.CurrentUserID(c), middleware.CurrentRole(c),
		interviewID, body.QuestionText, body.Category, body.Difficulty)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Question created",
		Data:    question,
	})
}

func (h *QuestionHandler) List(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	questions, err := h.uc.List(middleware.CurrentUserID(c), middleware.CurrentRole(c), interviewID)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get questions",
		Data:    questions,
	})
}

func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}
	questionID, err := uuid.Parse(c.Params("question_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question id",
		}, err)
	}

	var patch dto.QuestionPatchDTO
	if err := c.BodyParser(&patch); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question payload",
		}, err)
	}

	question, err := h.uc.Update(middleware.CurrentUserID(c), middleware.CurrentRole(c),
		interviewID, questionID, patch)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Question updated",
		Data:    question,
	})
}

func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}
	questionID, err := uuid.Parse(c.Params("question_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question id",
		}, err)
	}

	if err := h.uc.Delete(middleware.CurrentUserID(c), middleware.CurrentRole(c), interviewID, questionID); err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: fmt.Sprintf("Question %s deleted", questionID),
	})
}

// Generate kicks off a background generation run against the interview's
// stored resume text and returns the task id to poll.
func (h *QuestionHandler) Generate(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	taskID, err := h.uc.GenerateFromResume(middleware.CurrentUserID(c), middleware.CurrentRole(c), interviewID)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Question generation queued",
		Data:    fiber.Map{"task_id": taskID},
	})
}
