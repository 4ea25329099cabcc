package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owner. Authentication itself is external;
// this record only carries the identity and contact details the rest of
// the system needs.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}
