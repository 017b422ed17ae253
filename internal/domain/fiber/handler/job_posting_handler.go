package handler

import (
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/Prateeks16/interview-pilot/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobPostingHandler struct {
	uc *usecase.JobPostingUsecase
}

func NewJobPostingHandler(uc *usecase.JobPostingUsecase) *JobPostingHandler {
	return &JobPostingHandler{uc: uc}
}

func (h *JobPostingHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/jobs",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Create)
	app.Get("/jobs",
		middleware.Identity(),
		h.List)
	app.Get("/jobs/match/:interview_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Match)
}

func (h *JobPostingHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Skills      string `json:"skills"`
		Salary      string `json:"salary"`
	}
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job payload",
		}, err)
	}
	if body.Title == "" || body.Description == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and description are required",
		})
	}

	posting, err := h.uc.Create(c.UserContext(), middleware.CurrentUserID(c),
		body.Title, body.Description, body.Skills, body.Salary)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job posting created",
		Data:    posting,
	})
}

func (h *JobPostingHandler) List(c *fiber.Ctx) error {
	postings, pagination, err := h.uc.List(c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list job postings",
		Data:       postings,
		Pagination: pagination,
	})
}

func (h *JobPostingHandler) Match(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	postings, err := h.uc.MatchForInterview(c.UserContext(), interviewID, c.QueryInt("top_k", 5))
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match job postings",
		Data:    postings,
	})
}
