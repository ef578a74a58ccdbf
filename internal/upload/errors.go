package upload

import (
	"drive-upload-backend/internal/auth"
	"drive-upload-backend/pkg/models"
	"errors"
	"net/http"
)

var (
	ErrNoFiles     = errors.New("selected post doesn't have any files to be uploaded")
	ErrNoSelection = errors.New("no files were selected")
	ErrInvalidCall = errors.New("invalid call request")
)

const (
	DrivePrefix      = "Google failed: "
	MattermostPrefix = "Mattermost failed: "
)

// TransferError is a failed transfer of one attachment
type TransferError struct {
	Attachment models.Attachment
	Prefix     string
	Err        error
}

func (e *TransferError) Error() string {
	return e.Prefix + e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

type ErrorResponse struct {
	StatusCode int
	Message    string
}

// GetErrorResponse returns the call response status and user-facing text for an error
func GetErrorResponse(err error) ErrorResponse {
	var transferErr *TransferError
	switch {
	case errors.Is(err, ErrNoFiles):
		return ErrorResponse{http.StatusOK, "Selected post doesn't have any files to be uploaded"}
	case errors.Is(err, ErrNoSelection):
		return ErrorResponse{http.StatusOK, "Select at least one file to upload"}
	case errors.Is(err, ErrInvalidCall):
		return ErrorResponse{http.StatusBadRequest, err.Error()}
	case errors.Is(err, auth.ErrNotConnected):
		return ErrorResponse{http.StatusOK, "Connect your Google Drive account before uploading files"}
	case errors.Is(err, auth.ErrMissingApp):
		return ErrorResponse{http.StatusOK, "The Google Drive OAuth app is not configured"}
	case errors.As(err, &transferErr):
		return ErrorResponse{http.StatusOK, err.Error()}
	default:
		return ErrorResponse{http.StatusInternalServerError, "An unexpected error occurred. Please try again."}
	}
}
