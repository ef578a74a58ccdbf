package models

// Post is a Mattermost post as returned by the REST API
type Post struct {
	ID        string        `json:"id"`
	ChannelID string        `json:"channel_id"`
	UserID    string        `json:"user_id"`
	RootID    string        `json:"root_id"`
	Message   string        `json:"message"`
	FileIDs   []string      `json:"file_ids"`
	Metadata  *PostMetadata `json:"metadata,omitempty"`
	Props     PostProps     `json:"props,omitempty"`
}

// PostMetadata carries the file infos of a post, parallel to Post.FileIDs
type PostMetadata struct {
	Files []FileInfo `json:"files"`
}

// FileInfo is Mattermost's metadata for one attached file
type FileInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	Extension string `json:"extension,omitempty"`
	Size      int64  `json:"size,omitempty"`
}

// PostProps holds the structured props of an outgoing post
type PostProps struct {
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment is a message attachment card
type SlackAttachment struct {
	AuthorName string `json:"author_name,omitempty"`
	AuthorIcon string `json:"author_icon,omitempty"`
	Title      string `json:"title,omitempty"`
	TitleLink  string `json:"title_link,omitempty"`
	Text       string `json:"text,omitempty"`
	Footer     string `json:"footer,omitempty"`
	FooterIcon string `json:"footer_icon,omitempty"`
}

// PostCreate is the body of a create post request
type PostCreate struct {
	Message   string    `json:"message"`
	UserID    string    `json:"user_id,omitempty"`
	ChannelID string    `json:"channel_id"`
	RootID    string    `json:"root_id,omitempty"`
	Props     PostProps `json:"props"`
}

// Attachment is one file of a source message with its identifier and metadata in a single record
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

// SourceMessage is the message whose attachments are being transferred
type SourceMessage struct {
	ID          string
	ChannelID   string
	Attachments []Attachment
}

// SourceMessage resolves the post's parallel file_ids / metadata.files lists into one ordered
// record list. Positions missing on either side are dropped.
func (p *Post) SourceMessage() *SourceMessage {
	msg := &SourceMessage{
		ID:        p.ID,
		ChannelID: p.ChannelID,
	}
	if p.Metadata == nil {
		return msg
	}

	n := min(len(p.FileIDs), len(p.Metadata.Files))
	msg.Attachments = make([]Attachment, 0, n)
	for i := 0; i < n; i++ {
		info := p.Metadata.Files[i]
		msg.Attachments = append(msg.Attachments, Attachment{
			ID:       info.ID,
			Name:     info.Name,
			MimeType: info.MimeType,
		})
	}
	return msg
}
