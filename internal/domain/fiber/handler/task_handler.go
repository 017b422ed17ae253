package handler

import (
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/util"
	"github.com/Prateeks16/interview-pilot/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	runner *worker.GenerationRunner
}

func NewTaskHandler(runner *worker.GenerationRunner) *TaskHandler {
	return &TaskHandler{runner: runner}
}

func (h *TaskHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/tasks/:id", middleware.Identity(), h.Status)
}

func (h *TaskHandler) Status(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid task id",
		}, err)
	}

	status, err := h.runner.Status(id)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get task status",
		Data:    status,
	})
}
