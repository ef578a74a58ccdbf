package upload

import (
	"drive-upload-backend/pkg/models"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatCardDate formats a creation time as "Oct 16th, 2026" in the server's local time
func FormatCardDate(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%s %s, %d", t.Format("Jan"), humanize.Ordinal(t.Day()), t.Year())
}

// BuildCards maps stored files to attachment cards, keeping their order
func BuildCards(files []*models.RemoteFile, productLabel string) []models.SlackAttachment {
	cards := make([]models.SlackAttachment, 0, len(files))
	for _, file := range files {
		owner := file.FirstOwner()
		cards = append(cards, models.SlackAttachment{
			AuthorName: owner.DisplayName,
			AuthorIcon: owner.PhotoLink,
			Title:      file.Name,
			TitleLink:  file.WebViewLink,
			Footer:     fmt.Sprintf("%s | %s", productLabel, FormatCardDate(file.CreatedTime)),
			FooterIcon: file.IconLink,
		})
	}
	return cards
}

// ConfirmationText is the body of the confirmation message for the given number of stored files
func ConfirmationText(uploaded int) string {
	if uploaded > 1 {
		return "Files uploaded to Google Drive!"
	}
	return "File uploaded to Google Drive!"
}

func failureText(failed []UploadResult) string {
	names := make([]string, 0, len(failed))
	for _, result := range failed {
		names = append(names, result.Attachment.Name)
	}
	return fmt.Sprintf("Failed to upload: %s", strings.Join(names, ", "))
}

// BuildConfirmation builds the threaded reply posted after a transfer
func BuildConfirmation(req TransferRequest, report *TransferReport, productLabel string) *models.PostCreate {
	files := report.Successes()
	message := ConfirmationText(len(files))
	if failed := report.Failures(); len(failed) > 0 {
		message += "\n" + failureText(failed)
	}

	return &models.PostCreate{
		Message:   message,
		UserID:    req.ActingUserID,
		ChannelID: req.ChannelID,
		RootID:    req.SourceMessageID,
		Props: models.PostProps{
			Attachments: BuildCards(files, productLabel),
		},
	}
}
