package dto

import (
	"time"

	"chatledger/internal/domain/contact"
)

type ContactRequestDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func ContactRequestFromEntity(r *contact.ContactRequest) ContactRequestDTO {
	return ContactRequestDTO{
		ID:        r.ID(),
		Name:      r.Name(),
		Email:     r.Email(),
		Subject:   r.Subject(),
		Message:   r.Message(),
		CreatedAt: r.CreatedAt(),
	}
}

func ContactRequestsFromEntities(reqs []*contact.ContactRequest) []ContactRequestDTO {
	out := make([]ContactRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ContactRequestFromEntity(r))
	}
	return out
}
