package upload

import (
	"context"
	"drive-upload-backend/pkg/models"
	"errors"
	"io"
	"strings"
	"sync"
	"time"
)

var testCreatedTime = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.Local)

// mockMessageStore is a test implementation of MessageStore
type mockMessageStore struct {
	mu sync.Mutex

	message    *models.SourceMessage
	getErr     error
	content    map[string]string
	contentErr map[string]error
	createErr  error

	fetched []string
	created []*models.PostCreate
}

func newMockMessageStore(postID, channelID string, attachments ...models.Attachment) *mockMessageStore {
	content := make(map[string]string, len(attachments))
	for _, a := range attachments {
		content[a.ID] = "content of " + a.Name
	}
	return &mockMessageStore{
		message: &models.SourceMessage{
			ID:          postID,
			ChannelID:   channelID,
			Attachments: attachments,
		},
		content:    content,
		contentErr: map[string]error{},
	}
}

func (m *mockMessageStore) GetMessage(_ context.Context, postID string) (*models.SourceMessage, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.message == nil || m.message.ID != postID {
		return nil, errors.New("post not found")
	}
	return m.message, nil
}

func (m *mockMessageStore) GetAttachmentContent(_ context.Context, fileID string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetched = append(m.fetched, fileID)
	if err := m.contentErr[fileID]; err != nil {
		return nil, err
	}
	data, ok := m.content[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (m *mockMessageStore) CreateMessage(_ context.Context, post *models.PostCreate) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, post)
	return &models.Post{
		ID:        "reply-" + post.RootID,
		ChannelID: post.ChannelID,
		RootID:    post.RootID,
		Message:   post.Message,
		Props:     post.Props,
	}, nil
}

type uploadCall struct {
	Name     string
	MimeType string
	Content  string
	Fields   string
}

// mockDrive is a test implementation of DriveUploader
type mockDrive struct {
	mu sync.Mutex

	fail  map[string]error
	delay map[string]time.Duration

	uploads []uploadCall
}

func newMockDrive() *mockDrive {
	return &mockDrive{
		fail:  map[string]error{},
		delay: map[string]time.Duration{},
	}
}

func (d *mockDrive) UploadFile(ctx context.Context, meta models.FileMetadata, media models.Media, fields string) (*models.RemoteFile, error) {
	data, err := io.ReadAll(media.Body)
	if err != nil {
		return nil, err
	}

	if delay := d.delayFor(meta.Name); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	d.uploads = append(d.uploads, uploadCall{
		Name:     meta.Name,
		MimeType: media.MimeType,
		Content:  string(data),
		Fields:   fields,
	})
	failErr := d.fail[meta.Name]
	d.mu.Unlock()

	if failErr != nil {
		return nil, failErr
	}

	return &models.RemoteFile{
		ID:          "drive-" + meta.Name,
		Name:        meta.Name,
		WebViewLink: "https://drive.google.com/file/d/drive-" + meta.Name + "/view",
		IconLink:    "https://drive-thirdparty.googleusercontent.com/16/type/" + media.MimeType,
		Owners: []models.DriveUser{
			{DisplayName: "Jane Doe", PhotoLink: "https://lh3.googleusercontent.com/a/jane"},
		},
		CreatedTime: testCreatedTime,
	}, nil
}

func (d *mockDrive) delayFor(name string) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay[name]
}

func (d *mockDrive) uploadedNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, len(d.uploads))
	for _, u := range d.uploads {
		names = append(names, u.Name)
	}
	return names
}

func testAttachments() []models.Attachment {
	return []models.Attachment{
		{ID: "a", Name: "x.png", MimeType: "image/png"},
		{ID: "b", Name: "y.pdf", MimeType: "application/pdf"},
		{ID: "c", Name: "z.docx", MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	}
}

func cardTitles(post *models.PostCreate) []string {
	titles := make([]string, 0, len(post.Props.Attachments))
	for _, card := range post.Props.Attachments {
		titles = append(titles, card.Title)
	}
	return titles
}
