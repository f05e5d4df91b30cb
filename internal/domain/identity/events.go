package identity

// UserMetadata carries optional display fields from the identity provider.
type UserMetadata struct {
	Username  string `json:"username,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserCreatedEvent is raised by the identity provider when a user signs up.
// Delivery is at-least-once; consumers must be idempotent.
type UserCreatedEvent struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Metadata UserMetadata `json:"metadata"`
}

// UserEmailChangedEvent is raised when a user changes their email at the
// identity provider.
type UserEmailChangedEvent struct {
	ID       string `json:"id"`
	OldEmail string `json:"old_email"`
	NewEmail string `json:"new_email"`
}
