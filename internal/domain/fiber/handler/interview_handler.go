package handler

import (
	"fmt"
	"path/filepath"

	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/Prateeks16/interview-pilot/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxResumeSize = 5 * 1024 * 1024

type InterviewHandler struct {
	uc        *usecase.InterviewUsecase
	uploadDir string
}

func NewInterviewHandler(uc *usecase.InterviewUsecase, uploadDir string) *InterviewHandler {
	if uploadDir == "" {
		uploadDir = "./uploads/resumes/"
	}
	return &InterviewHandler{uc: uc, uploadDir: uploadDir}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/interviews",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Create)
	app.Get("/interviews/token/:token",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCandidate),
		h.GetByToken)
	app.Get("/interviews/:id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCandidate),
		h.Get)
	app.Delete("/interviews/:id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleRecruiter),
		h.Delete)
	app.Post("/interviews/:token/resume",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleCandidate, middleware.RoleRecruiter),
		h.UploadResume)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		JobDescription string `json:"job_description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview payload",
		}, err)
	}
	if body.Title == "" || body.JobDescription == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and job_description are required",
		})
	}

	interview, err := h.uc.Create(middleware.CurrentUserID(c), body.Title, body.Description, body.JobDescription)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview created",
		Data:    interview,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	interview, err := h.uc.Get(middleware.CurrentUserID(c), middleware.CurrentRole(c), id)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview",
		Data:    interview,
	})
}

func (h *InterviewHandler) GetByToken(c *fiber.Ctx) error {
	interview, err := h.uc.GetByToken(middleware.CurrentUserID(c), middleware.CurrentRole(c), c.Params("token"))
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview",
		Data:    interview,
	})
}

func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	if err := h.uc.Delete(middleware.CurrentUserID(c), middleware.CurrentRole(c), id); err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: fmt.Sprintf("Interview %s deleted", id),
	})
}

// UploadResume saves the file, extracts its text, mirrors it onto the
// interview and hands question generation to the background runner. The
// response returns immediately with the task id to poll.
func (h *InterviewHandler) UploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}
	if file.Size > maxResumeSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file size is too large (max 5MB)",
		})
	}

	// The client controls Filename; strip any path so it cannot escape
	// the upload directory.
	savePath := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save resume file",
		}, err)
	}

	resumeText, err := util.ExtractResumeText(savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to extract resume text",
		}, err)
	}

	interview, taskID, err := h.uc.AttachResume(c.Params("token"), resumeText)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume uploaded, question generation queued",
		Data: fiber.Map{
			"interview_id": interview.ID,
			"task_id":      taskID,
		},
	})
}
