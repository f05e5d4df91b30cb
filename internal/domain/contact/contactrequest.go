// Package contact stores inbound contact-form requests for administrative
// follow-up. Requests are written by anyone and read by administrators only.
package contact

import (
	"context"
	"fmt"
	"time"

	"chatledger/internal/shared/biztime"
)

type ContactRequest struct {
	id        uint
	name      string
	email     string
	subject   string
	message   string
	createdAt time.Time
}

func NewContactRequest(name, email, subject, message string) (*ContactRequest, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	return &ContactRequest{
		name:      name,
		email:     email,
		subject:   subject,
		message:   message,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructContactRequest(id uint, name, email, subject, message string, createdAt time.Time) *ContactRequest {
	return &ContactRequest{
		id:        id,
		name:      name,
		email:     email,
		subject:   subject,
		message:   message,
		createdAt: createdAt,
	}
}

func (r *ContactRequest) ID() uint             { return r.id }
func (r *ContactRequest) Name() string         { return r.name }
func (r *ContactRequest) Email() string        { return r.email }
func (r *ContactRequest) Subject() string      { return r.subject }
func (r *ContactRequest) Message() string      { return r.message }
func (r *ContactRequest) CreatedAt() time.Time { return r.createdAt }

func (r *ContactRequest) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("contact request ID is already set")
	}
	r.id = id
	return nil
}

type ContactRequestRepository interface {
	Create(ctx context.Context, req *ContactRequest) error
	List(ctx context.Context, page, pageSize int) ([]*ContactRequest, int64, error)
}
