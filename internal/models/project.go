package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Project is a portfolio entry as returned by the API.
// The id travels as a JSON string; keys are camelCase.
type Project struct {
	ID          int64     `json:"id,string"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	VideoURL    *string   `json:"videoUrl"`
	GithubURL   *string   `json:"githubUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	ImageURL    string  `json:"image_url" validate:"required"`
	VideoURL    *string `json:"video_url,omitempty"`
	GithubURL   *string `json:"github_url,omitempty"`
}

// UpdateProjectRequest represents a partial update. Nil pointers and unset
// optional fields leave the stored value untouched.
type UpdateProjectRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	VideoURL    OptionalString `json:"video_url,omitzero"`
	GithubURL   OptionalString `json:"github_url,omitzero"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u UpdateProjectRequest) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ImageURL == nil &&
		!u.VideoURL.Set && !u.GithubURL.Set
}

// Apply merges the fields present in u into p.
func (u UpdateProjectRequest) Apply(p *Project) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.VideoURL.Set {
		p.VideoURL = NullIfEmpty(u.VideoURL.Value)
	}
	if u.GithubURL.Set {
		p.GithubURL = NullIfEmpty(u.GithubURL.Value)
	}
}

// OptionalString distinguishes a field that was omitted from one that was
// sent as null. Set is true whenever the key appeared in the JSON object.
type OptionalString struct {
	Set   bool
	Value *string
}

// Some returns an OptionalString holding s.
func Some(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

// Null returns an OptionalString that clears the field.
func Null() OptionalString {
	return OptionalString{Set: true}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// IsZero lets encoding/json drop unset fields with omitzero.
func (o OptionalString) IsZero() bool {
	return !o.Set
}

// NullIfEmpty maps a blank optional link to nil so it is stored as NULL.
func NullIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// DeleteResponse is returned after a project is removed.
type DeleteResponse struct {
	Message string `json:"message"`
}
