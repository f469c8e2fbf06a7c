package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Claims is the token payload understood by both verifiers. The identity
// provider issues user_id alongside sub; either names the account.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Picture  string `json:"picture,omitempty"`
	AuthTime int64  `json:"auth_time,omitempty"`
}

func (c Claims) identity() domain.Identity {
	id := domain.Identity{
		UID:         c.Subject,
		Email:       c.Email,
		DisplayName: c.Name,
		PhotoURL:    c.Picture,
	}
	if id.UID == "" {
		id.UID = c.UserID
	}
	if c.AuthTime > 0 {
		t := time.Unix(c.AuthTime, 0).UTC()
		id.CreatedAt = &t
	}
	return id
}
