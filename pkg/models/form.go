package models

// FieldType is the type of a form field
type FieldType string

const (
	FieldTypeText         FieldType = "text"
	FieldTypeStaticSelect FieldType = "static_select"
	FieldTypeBool         FieldType = "bool"
)

// SelectOption is one selectable item of a select field
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field is a form field
type Field struct {
	Type        FieldType      `json:"type"`
	Name        string         `json:"name"`
	Value       any            `json:"value,omitempty"`
	ModalLabel  string         `json:"modal_label,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	Multiselect bool           `json:"multiselect,omitempty"`
	IsRequired  bool           `json:"is_required,omitempty"`
}

// Form is a declarative form descriptor rendered by Mattermost
type Form struct {
	Title  string  `json:"title"`
	Icon   string  `json:"icon,omitempty"`
	Fields []Field `json:"fields"`
	Submit *Call   `json:"submit"`
}
