package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// ContactRequest is a contact form payload. Keys outside the named fields land in Metadata.
type ContactRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Subject  string         `json:"subject"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"-"`
}

func (r *ContactRequest) UnmarshalJSON(data []byte) error {
	type plain ContactRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := extraFields(data, "name", "email", "phone", "subject", "message")
	if err != nil {
		return err
	}
	p.Metadata = extra
	*r = ContactRequest(p)
	return nil
}

// FeedbackRequest is a feedback form payload. Keys outside the named fields land in Metadata.
type FeedbackRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Category string         `json:"category"`
	Feedback string         `json:"feedback"`
	Metadata map[string]any `json:"-"`
}

func (r *FeedbackRequest) UnmarshalJSON(data []byte) error {
	type plain FeedbackRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := extraFields(data, "name", "email", "category", "feedback")
	if err != nil {
		return err
	}
	p.Metadata = extra
	*r = FeedbackRequest(p)
	return nil
}

func extraFields(data []byte, known ...string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

type Service interface {
	CreateContact(ctx context.Context, req ContactRequest) (ContactMessage, error)
	CreateFeedback(ctx context.Context, req FeedbackRequest) (FeedbackMessage, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidCategory = errors.New("invalid_category")
)
