package upload

import (
	"context"
	"drive-upload-backend/pkg/models"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// MessagingFactory builds a messaging client for one call
type MessagingFactory func(siteURL, accessToken string) MessageStore

// DriveFactory builds the acting user's Drive handle for one call
type DriveFactory func(ctx context.Context, callCtx *models.Context) (DriveUploader, error)

// Handler handles the Mattermost app calls of the upload flow
type Handler struct {
	service   *Service
	messaging MessagingFactory
	drive     DriveFactory
	validate  *validator.Validate
}

// NewHandler creates a new upload handler
func NewHandler(service *Service, messaging MessagingFactory, drive DriveFactory) *Handler {
	return &Handler{
		service:   service,
		messaging: messaging,
		drive:     drive,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes registers the upload call routes with the Echo router
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST(FormPath, h.HandleForm)
	e.POST(SubmitPath, h.HandleSubmit)
}

// HandleForm handles POST /upload-file/form
// It returns the form listing the files of the post the command was invoked on
func (h *Handler) HandleForm(c echo.Context) error {
	call, err := h.bindCall(c)
	if err != nil {
		return h.respondError(c, err)
	}

	if call.Context.ActingUserAccessToken == "" {
		return h.respondError(c, fmt.Errorf("%w: acting user access token is required", ErrInvalidCall))
	}

	messages := h.messaging(call.Context.MattermostSiteURL, call.Context.ActingUserAccessToken)
	form, err := BuildSelectionForm(c.Request().Context(), messages, call.Context.Post.ID)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewFormResponse(form))
}

// HandleSubmit handles POST /upload-file/submit
// It uploads the selected files and replies in the post's thread
func (h *Handler) HandleSubmit(c echo.Context) error {
	call, err := h.bindCall(c)
	if err != nil {
		return h.respondError(c, err)
	}

	if call.Context.BotAccessToken == "" {
		return h.respondError(c, fmt.Errorf("%w: bot access token is required", ErrInvalidCall))
	}
	if call.Context.ActingUser == nil || call.Context.ActingUser.ID == "" {
		return h.respondError(c, fmt.Errorf("%w: acting user is required", ErrInvalidCall))
	}

	ctx := c.Request().Context()
	drive, err := h.drive(ctx, &call.Context)
	if err != nil {
		return h.respondError(c, err)
	}

	messages := h.messaging(call.Context.MattermostSiteURL, call.Context.BotAccessToken)
	report, err := h.service.ExecuteTransfer(ctx, messages, drive, TransferRequest{
		SourceMessageID: call.Context.Post.ID,
		ChannelID:       call.Context.Post.ChannelID,
		ActingUserID:    call.Context.ActingUser.ID,
		Selection:       SelectionFromValues(call.Values),
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewOKResponse(submitText(report)))
}

func (h *Handler) bindCall(c echo.Context) (*models.CallRequest, error) {
	var call models.CallRequest
	if err := c.Bind(&call); err != nil {
		return nil, fmt.Errorf("%w: invalid request format", ErrInvalidCall)
	}
	if err := h.validate.Struct(&call); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCall, err)
	}
	if call.Context.Post.ID == "" {
		return nil, fmt.Errorf("%w: post is required", ErrInvalidCall)
	}
	return &call, nil
}

func (h *Handler) respondError(c echo.Context, err error) error {
	resp := GetErrorResponse(err)
	log := zerolog.Ctx(c.Request().Context())
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Err(err).Str("path", c.Path()).Msg("Call failed")
	} else {
		log.Debug().Err(err).Str("path", c.Path()).Msg("Call rejected")
	}
	return c.JSON(resp.StatusCode, models.NewErrorResponse(resp.Message))
}

func submitText(report *TransferReport) string {
	if len(report.Results) == 0 {
		return "No matching files to upload."
	}
	uploaded := len(report.Successes())
	text := fmt.Sprintf("Uploaded %d of %d selected files to Google Drive.", uploaded, len(report.Results))
	if uploaded == len(report.Results) {
		text = ConfirmationText(uploaded)
	}
	return text
}

// SelectionFromValues extracts the selected file ids from submitted form values, dropping
// duplicates and keeping the first occurrence order
func SelectionFromValues(values map[string]any) []string {
	var raw []any
	switch v := values[FieldName].(type) {
	case []any:
		raw = v
	case nil:
		return nil
	default:
		raw = []any{v}
	}

	seen := make(map[string]struct{}, len(raw))
	selection := make([]string, 0, len(raw))
	for _, entry := range raw {
		var id string
		switch e := entry.(type) {
		case string:
			id = e
		case map[string]any:
			id, _ = e["value"].(string)
		}
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		selection = append(selection, id)
	}
	return selection
}
