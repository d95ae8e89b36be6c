package dare

import (
	"time"
)

// Dare is a challenge posted by one user for others to perform.
type Dare struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Status      Status     `json:"status"`
	Privacy     Privacy    `json:"privacy,omitempty"`
	CreatorID   string     `json:"creatorId"`
	CreatorName string     `json:"creatorName,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Act is one user's attempt at a dare, optionally graded.
type Act struct {
	ID          string    `json:"id"`
	DareID      string    `json:"dareId"`
	PerformerID string    `json:"performerId"`
	Status      Status    `json:"status"`
	Grade       *int      `json:"grade,omitempty"`
	EvidenceURL string    `json:"evidenceUrl,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SwitchGame is a dare whose roles are decided by a game between participants.
type SwitchGame struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Difficulty   Difficulty `json:"difficulty"`
	Status       Status     `json:"status"`
	CreatorID    string     `json:"creatorId"`
	Participants []string   `json:"participants,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Notification is an entry in a user's notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a public profile.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
