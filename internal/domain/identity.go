package domain

import "time"

// Identity is the signed-in user as asserted by the hosted identity provider.
// UID is the stable owner key for saved trips.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	CreatedAt   *time.Time
}
