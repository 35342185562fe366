package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. The password hash is never
// serialized to JSON responses.
type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username       string        `bson:"username" json:"username"`
	Email          string        `bson:"email" json:"email"`
	PasswordHash   string        `bson:"password" json:"-"`
	Age            *int          `bson:"age,omitempty" json:"age,omitempty"`
	Bio            string        `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture string        `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	RefreshTokens  []string      `bson:"refreshTokens" json:"-"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// HasRefreshToken reports whether the token is currently active for the user.
func (u *User) HasRefreshToken(token string) bool {
	for _, t := range u.RefreshTokens {
		if t == token {
			return true
		}
	}
	return false
}

// AddRefreshToken records a newly issued refresh token. Membership is
// unique; adding a token twice is a no-op.
func (u *User) AddRefreshToken(token string) {
	if u.HasRefreshToken(token) {
		return
	}
	u.RefreshTokens = append(u.RefreshTokens, token)
}

// RemoveRefreshToken removes exactly one token from the active set.
func (u *User) RemoveRefreshToken(token string) {
	kept := u.RefreshTokens[:0]
	for _, t := range u.RefreshTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.RefreshTokens = kept
}

// ClearRefreshTokens invalidates every active session for the user.
func (u *User) ClearRefreshTokens() {
	u.RefreshTokens = nil
}
