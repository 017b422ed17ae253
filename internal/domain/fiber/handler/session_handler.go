package handler

import (
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/Prateeks16/interview-pilot/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionHandler struct {
	uc *usecase.SessionUsecase
}

func NewSessionHandler(uc *usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/sessions/start/:interview_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleCandidate),
		h.Start)
	app.Post("/sessions/finish/:session_id",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleCandidate, middleware.RoleRecruiter),
		h.Finish)
	app.Post("/answers",
		middleware.Identity(),
		middleware.RequireRole(middleware.RoleCandidate),
		h.SubmitAnswer)
}

func (h *SessionHandler) Start(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	session, questions, err := h.uc.Start(middleware.CurrentUserID(c), interviewID)
	if err != nil {
		return util.AppError(c, err)
	}

	type questionOut struct {
		ID           uuid.UUID `json:"id"`
		QuestionText string    `json:"question_text"`
		Source       string    `json:"source"`
	}
	out := make([]questionOut, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionOut{ID: q.ID, QuestionText: q.QuestionText, Source: q.Source})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Session started",
		Data: fiber.Map{
			"session_id": session.ID,
			"questions":  out,
		},
	})
}

func (h *SessionHandler) Finish(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	session, err := h.uc.Finish(sessionID, middleware.CurrentUserID(c), middleware.CurrentRole(c))
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Session finished",
		Data:    fiber.Map{"session_id": session.ID, "status": session.Status},
	})
}

func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	var body struct {
		SessionID  string `json:"session_id" form:"session_id"`
		QuestionID string `json:"question_id" form:"question_id"`
		AnswerText string `json:"answer_text" form:"answer_text"`
		MediaPath  string `json:"media_path" form:"media_path"`
	}
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid answer payload",
		}, err)
	}

	sessionID, err := uuid.Parse(body.SessionID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}
	questionID, err := uuid.Parse(body.QuestionID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question id",
		}, err)
	}

	answer, err := h.uc.SubmitAnswer(middleware.CurrentUserID(c), sessionID, questionID, body.AnswerText, body.MediaPath)
	if err != nil {
		return util.AppError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Answer saved",
		Data:    fiber.Map{"id": answer.ID},
	})
}
