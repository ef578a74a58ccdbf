package upload

import (
	"context"
	"drive-upload-backend/pkg/models"
	"fmt"
)

// BuildSelectionForm fetches the post and builds the form listing its files as selectable items.
// It has no side effects.
func BuildSelectionForm(ctx context.Context, messages MessageReader, postID string) (*models.Form, error) {
	msg, err := messages.GetMessage(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", postID, err)
	}
	if len(msg.Attachments) == 0 {
		return nil, ErrNoFiles
	}

	options := make([]models.SelectOption, 0, len(msg.Attachments))
	for _, attachment := range msg.Attachments {
		options = append(options, models.SelectOption{
			Label: attachment.Name,
			Value: attachment.ID,
		})
	}

	return &models.Form{
		Title: FormTitle,
		Icon:  GoogleDriveIcon,
		Fields: []models.Field{
			{
				Type:        models.FieldTypeStaticSelect,
				Name:        FieldName,
				Value:       options,
				ModalLabel:  FormModalLabel,
				Options:     options,
				Multiselect: true,
			},
		},
		Submit: &models.Call{
			Path: SubmitPath,
			Expand: &models.Expand{
				ActingUser:            models.ExpandSummary,
				ActingUserAccessToken: models.ExpandAll,
				OAuth2App:             models.ExpandSummary,
				OAuth2User:            models.ExpandSummary,
				Post:                  models.ExpandSummary,
			},
		},
	}, nil
}
