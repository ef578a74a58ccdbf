package upload

import (
	"context"
	"drive-upload-backend/pkg/models"
	"io"
)

// MessageReader reads source messages from the messaging platform
type MessageReader interface {
	GetMessage(ctx context.Context, postID string) (*models.SourceMessage, error)
}

// MessageStore is the messaging platform surface used by a transfer
type MessageStore interface {
	MessageReader
	GetAttachmentContent(ctx context.Context, fileID string) (io.ReadCloser, error)
	CreateMessage(ctx context.Context, post *models.PostCreate) (*models.Post, error)
}

// DriveUploader is an authenticated destination storage handle
type DriveUploader interface {
	UploadFile(ctx context.Context, meta models.FileMetadata, media models.Media, fields string) (*models.RemoteFile, error)
}
