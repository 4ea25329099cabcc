package category

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a spending category owned by a user. Budgets and
// category rules reference it; transactions may or may not carry one.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}
