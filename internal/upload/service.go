package upload

import (
	"bufio"
	"context"
	"drive-upload-backend/pkg/models"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// sniffLen is the number of leading bytes used to detect a missing MIME type
const sniffLen = 3072

// Options configures how a transfer runs
type Options struct {
	// AbortOnFailure cancels the batch on the first failed item and posts nothing
	AbortOnFailure bool
	// Concurrency is the number of items transferred at once, 1 means sequential
	Concurrency  int
	ItemTimeout  time.Duration
	ProductLabel string
}

// Service moves selected attachments of a post to Google Drive and posts the confirmation
type Service struct {
	opts Options
}

func NewService(opts Options) *Service {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.ItemTimeout <= 0 {
		opts.ItemTimeout = 5 * time.Minute
	}
	return &Service{opts: opts}
}

// ExecuteTransfer re-reads the source post, transfers every selected attachment in source order,
// and posts one threaded confirmation carrying a card per stored file.
//
// Selected ids that are no longer attached to the post are skipped. With AbortOnFailure the first
// failed item fails the call and nothing is posted. Otherwise failures are reported next to the
// successes, and the call only fails when no item was stored.
func (s *Service) ExecuteTransfer(ctx context.Context, messages MessageStore, drive DriveUploader, req TransferRequest) (*TransferReport, error) {
	if len(req.Selection) == 0 {
		return nil, ErrNoSelection
	}

	log := zerolog.Ctx(ctx).With().
		Str("post_id", req.SourceMessageID).
		Str("channel_id", req.ChannelID).
		Logger()
	ctx = log.WithContext(ctx)

	msg, err := messages.GetMessage(ctx, req.SourceMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", req.SourceMessageID, err)
	}

	items := selectAttachments(msg.Attachments, req.Selection)
	if len(items) == 0 {
		log.Debug().Strs("selection", req.Selection).Msg("None of the selected files are attached to the post")
		transfersTotal.WithLabelValues("empty").Inc()
		return &TransferReport{}, nil
	}

	results, abortErr := s.transferAll(ctx, messages, drive, items)
	report := &TransferReport{Results: results}
	if err := ctx.Err(); err != nil {
		transfersTotal.WithLabelValues("canceled").Inc()
		return report, fmt.Errorf("transfer canceled: %w", err)
	}

	failed := report.Failures()
	if len(failed) > 0 && (s.opts.AbortOnFailure || len(failed) == len(report.Results)) {
		transfersTotal.WithLabelValues("failed").Inc()
		if abortErr != nil {
			return report, abortErr
		}
		if len(failed) == 1 {
			return report, failed[0].Err
		}
		var merr *multierror.Error
		for _, result := range failed {
			merr = multierror.Append(merr, result.Err)
		}
		return report, merr.ErrorOrNil()
	}

	post := BuildConfirmation(req, report, s.opts.ProductLabel)
	report.Posted, err = messages.CreateMessage(ctx, post)
	if err != nil {
		transfersTotal.WithLabelValues("failed").Inc()
		return report, fmt.Errorf("failed to create confirmation post: %w", err)
	}

	outcome := "completed"
	if len(failed) > 0 {
		outcome = "partial"
		log.Warn().Int("failed", len(failed)).Int("uploaded", len(report.Results)-len(failed)).Msg("Some files failed to upload")
	}
	transfersTotal.WithLabelValues(outcome).Inc()
	return report, nil
}

// selectAttachments keeps the attachments whose id is in the selection, in source order
func selectAttachments(attachments []models.Attachment, selection []string) []models.Attachment {
	selected := make(map[string]struct{}, len(selection))
	for _, id := range selection {
		selected[id] = struct{}{}
	}

	items := make([]models.Attachment, 0, len(selection))
	for _, attachment := range attachments {
		if _, ok := selected[attachment.ID]; ok {
			items = append(items, attachment)
		}
	}
	return items
}

// transferAll runs the per-item transfers. Results are written to the slot of their item, so the
// order matches the source order whatever the concurrency. In abort mode the first failure is
// returned and items that never started are left out of the results.
func (s *Service) transferAll(ctx context.Context, messages MessageStore, drive DriveUploader, items []models.Attachment) ([]UploadResult, error) {
	results := make([]UploadResult, len(items))
	started := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, item := range items {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			started[i] = true

			file, err := s.transferItem(gctx, messages, drive, item)
			results[i] = UploadResult{Attachment: item, File: file, Err: err}
			if err != nil && s.opts.AbortOnFailure {
				return err
			}
			return nil
		})
	}
	err := g.Wait()

	attempted := make([]UploadResult, 0, len(items))
	for i, result := range results {
		if started[i] {
			attempted = append(attempted, result)
		}
	}
	return attempted, err
}

// transferItem streams one attachment from Mattermost into Drive
func (s *Service) transferItem(ctx context.Context, messages MessageStore, drive DriveUploader, item models.Attachment) (*models.RemoteFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ItemTimeout)
	defer cancel()

	log := zerolog.Ctx(ctx).With().
		Str("file_id", item.ID).
		Str("file_name", item.Name).
		Logger()
	start := time.Now()

	content, err := messages.GetAttachmentContent(ctx, item.ID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch file from Mattermost")
		uploadItemsTotal.WithLabelValues("fetch_failed").Inc()
		return nil, &TransferError{Attachment: item, Prefix: MattermostPrefix, Err: err}
	}
	defer content.Close()

	body, mimeType := detectMimeType(content, item.MimeType)
	file, err := drive.UploadFile(ctx, models.FileMetadata{Name: item.Name}, models.Media{
		MimeType: mimeType,
		Body:     body,
	}, models.DriveFields)
	if err != nil {
		log.Warn().Err(err).Str("mime_type", mimeType).Msg("Failed to upload file to Google Drive")
		uploadItemsTotal.WithLabelValues("upload_failed").Inc()
		return nil, &TransferError{Attachment: item, Prefix: DrivePrefix, Err: err}
	}

	uploadDuration.Observe(time.Since(start).Seconds())
	uploadItemsTotal.WithLabelValues("success").Inc()
	log.Debug().Str("drive_file_id", file.ID).Str("mime_type", mimeType).Msg("Uploaded file to Google Drive")
	return file, nil
}

// detectMimeType returns the known MIME type, or sniffs it from the head of the stream.
// The returned reader yields the full content either way.
func detectMimeType(content io.Reader, known string) (io.Reader, string) {
	if known != "" {
		return content, known
	}

	br := bufio.NewReaderSize(content, sniffLen)
	head, _ := br.Peek(sniffLen)
	return br, mimetype.Detect(head).String()
}
