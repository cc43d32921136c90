package handler

import (
	"context"
	"io"
	"mime/multipart"

	"quiz-session/internal/domain"
	"quiz-session/internal/dto"
	"quiz-session/internal/logger"
	"quiz-session/internal/middleware"
	"quiz-session/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionMachine is the session state machine as seen by the HTTP layer
type SessionMachine interface {
	Snapshot() session.Snapshot
	SelectFile(file domain.UploadFile) error
	SetOptions(opts domain.GenerationOptions) error
	Generate(ctx context.Context) error
	SelectOption(index int, option string) error
	Submit(ctx context.Context) error
	Restart()
}

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	machine SessionMachine
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(machine SessionMachine) *SessionHandler {
	return &SessionHandler{
		machine: machine,
	}
}

func (h *SessionHandler) snapshot(c *fiber.Ctx) error {
	return c.JSON(dto.NewSessionResponse(h.machine.Snapshot()))
}

// GetSession godoc
// @Summary Get the current session
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	return h.snapshot(c)
}

// SelectFile godoc
// @Summary Select the document to generate a quiz from
// @Tags session
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF, DOCX or PPTX document"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /session/file [post]
func (h *SessionHandler) SelectFile(c *fiber.Ctx) error {
	header, ok := c.Locals(middleware.LocalUploadFile).(*multipart.FileHeader)
	if !ok || header == nil {
		return domain.NewInternalError("upload not validated", nil)
	}

	content, err := readFormFile(header)
	if err != nil {
		logger.Get().Error("Failed to read uploaded file", zap.String("file", header.Filename), zap.Error(err))
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	if err := h.machine.SelectFile(domain.UploadFile{Name: header.Filename, Content: content}); err != nil {
		return err
	}
	return h.snapshot(c)
}

// SetOptions godoc
// @Summary Set the generation options
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.OptionsRequest true "Generation options"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /session/options [put]
func (h *SessionHandler) SetOptions(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalOptions).(dto.OptionsRequest)
	if !ok {
		return domain.NewInternalError("options not validated", nil)
	}

	opts := domain.GenerationOptions{NumQuestions: req.NumQuestions, UserFocus: req.UserFocus}
	if err := h.machine.SetOptions(opts); err != nil {
		return err
	}
	return h.snapshot(c)
}

// Generate godoc
// @Summary Generate a quiz from the selected document
// @Description Blocks until the generation service has answered.
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /session/generate [post]
func (h *SessionHandler) Generate(c *fiber.Ctx) error {
	if err := h.machine.Generate(c.UserContext()); err != nil {
		return err
	}
	return h.snapshot(c)
}

// SelectOption godoc
// @Summary Answer a question
// @Tags session
// @Accept json
// @Produce json
// @Param index path int true "Question index"
// @Param request body dto.AnswerRequest true "Chosen option"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /session/answers/{index} [put]
func (h *SessionHandler) SelectOption(c *fiber.Ctx) error {
	index, okIndex := c.Locals(middleware.LocalAnswerIndex).(int)
	option, okOption := c.Locals(middleware.LocalAnswerOption).(string)
	if !okIndex || !okOption {
		return domain.NewInternalError("answer not validated", nil)
	}

	if err := h.machine.SelectOption(index, option); err != nil {
		return err
	}
	return h.snapshot(c)
}

// Submit godoc
// @Summary Submit the answers
// @Description Scores the attempt and requests feedback. A failed feedback request still answers 200 with the scored session and the error set.
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /session/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	err := h.machine.Submit(c.UserContext())
	if err == nil {
		return h.snapshot(c)
	}

	snap := h.machine.Snapshot()
	if snap.State == session.StateComplete && snap.Result != nil {
		logger.Get().Warn("Feedback unavailable, returning score only",
			zap.String("session_id", snap.SessionID),
			zap.Error(err))
		return c.JSON(dto.NewSessionResponse(snap))
	}
	return err
}

// Restart godoc
// @Summary Discard the session and start over
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	h.machine.Restart()
	return h.snapshot(c)
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
