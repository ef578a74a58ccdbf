package models

// ExpandLevel controls how much of a context entity Mattermost attaches to a call
type ExpandLevel string

const (
	ExpandNone    ExpandLevel = "none"
	ExpandID      ExpandLevel = "id"
	ExpandSummary ExpandLevel = "summary"
	ExpandAll     ExpandLevel = "all"
)

// Expand lists the context entities a call must carry
type Expand struct {
	ActingUser            ExpandLevel `json:"acting_user,omitempty"`
	ActingUserAccessToken ExpandLevel `json:"acting_user_access_token,omitempty"`
	OAuth2App             ExpandLevel `json:"oauth2_app,omitempty"`
	OAuth2User            ExpandLevel `json:"oauth2_user,omitempty"`
	Post                  ExpandLevel `json:"post,omitempty"`
	Channel               ExpandLevel `json:"channel,omitempty"`
}

// Call describes where a form submission is sent and what it carries
type Call struct {
	Path   string  `json:"path"`
	Expand *Expand `json:"expand,omitempty"`
}

// User is the expanded acting user
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// Context is the context bag sent with every call
type Context struct {
	MattermostSiteURL     string         `json:"mattermost_site_url" validate:"required,url"`
	AppPath               string         `json:"app_path,omitempty"`
	BotUserID             string         `json:"bot_user_id,omitempty"`
	BotAccessToken        string         `json:"bot_access_token,omitempty"`
	ActingUser            *User          `json:"acting_user,omitempty"`
	ActingUserAccessToken string         `json:"acting_user_access_token,omitempty"`
	Post                  *Post          `json:"post,omitempty" validate:"required"`
	OAuth2                *OAuth2Context `json:"oauth2,omitempty"`
}

// CallRequest is an inbound call from Mattermost
type CallRequest struct {
	Path    string         `json:"path"`
	Context Context        `json:"context"`
	Values  map[string]any `json:"values,omitempty"`
}

// CallResponseType is the kind of a call response
type CallResponseType string

const (
	CallResponseTypeOK    CallResponseType = "ok"
	CallResponseTypeForm  CallResponseType = "form"
	CallResponseTypeError CallResponseType = "error"
)

// CallResponse is returned to Mattermost for every call
type CallResponse struct {
	Type CallResponseType `json:"type"`
	Text string           `json:"text,omitempty"`
	Form *Form            `json:"form,omitempty"`
}

// NewOKResponse creates an ok call response with markdown text
func NewOKResponse(text string) CallResponse {
	return CallResponse{Type: CallResponseTypeOK, Text: text}
}

// NewFormResponse creates a form call response
func NewFormResponse(form *Form) CallResponse {
	return CallResponse{Type: CallResponseTypeForm, Form: form}
}

// NewErrorResponse creates an error call response
func NewErrorResponse(text string) CallResponse {
	return CallResponse{Type: CallResponseTypeError, Text: text}
}
