package upload

import "drive-upload-backend/pkg/models"

const (
	FormPath   = "/upload-file/form"
	SubmitPath = "/upload-file/submit"

	// FieldName is the name of the multi-select field, also the key of the submitted values
	FieldName = "upload_file_google_drive"

	FormTitle       = "Upload to Google Drive"
	FormModalLabel  = "Select the files you'd like to upload to Google Drive"
	GoogleDriveIcon = "google-drive.png"
)

// TransferRequest is a submitted selection for one source message
type TransferRequest struct {
	SourceMessageID string
	ChannelID       string
	ActingUserID    string
	Selection       []string
}

// UploadResult is the outcome of one attempted attachment: a remote file or an error
type UploadResult struct {
	Attachment models.Attachment
	File       *models.RemoteFile
	Err        error
}

// Succeeded reports whether the attachment was stored
func (r UploadResult) Succeeded() bool {
	return r.Err == nil && r.File != nil
}

// TransferReport summarizes one transfer run
type TransferReport struct {
	Results []UploadResult
	Posted  *models.Post
}

// Successes returns the stored files in source order
func (r *TransferReport) Successes() []*models.RemoteFile {
	files := make([]*models.RemoteFile, 0, len(r.Results))
	for _, result := range r.Results {
		if result.Succeeded() {
			files = append(files, result.File)
		}
	}
	return files
}

// Failures returns the failed results in source order
func (r *TransferReport) Failures() []UploadResult {
	var failed []UploadResult
	for _, result := range r.Results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
