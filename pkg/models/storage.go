package models

import (
	"io"
	"time"
)

// DriveFields is the set of fields requested from Drive for every uploaded file
const DriveFields = "id,name,webViewLink,iconLink,owners,createdTime"

// RemoteFile represents a file stored in Google Drive
type RemoteFile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	WebViewLink string      `json:"webViewLink"`
	IconLink    string      `json:"iconLink"`
	Owners      []DriveUser `json:"owners"`
	CreatedTime time.Time   `json:"createdTime"`
}

// DriveUser is a Drive file owner
type DriveUser struct {
	DisplayName  string `json:"displayName"`
	PhotoLink    string `json:"photoLink"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// FirstOwner returns the first listed owner or an empty owner
func (f *RemoteFile) FirstOwner() DriveUser {
	if len(f.Owners) == 0 {
		return DriveUser{}
	}
	return f.Owners[0]
}

// FileMetadata is the request body sent alongside the file content
type FileMetadata struct {
	Name    string   `json:"name"`
	Parents []string `json:"parents,omitempty"`
}

// Media is the content part of an upload
type Media struct {
	MimeType string
	Body     io.Reader
}
