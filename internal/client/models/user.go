// Package models defines the data shapes exchanged with the marketplace API
// and persisted locally by the client.
package models

// User is a profile snapshot returned by the API. It is never merged:
// every response carrying a user replaces the previous snapshot.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Phone     string  `json:"phone_number,omitempty"`
	Location  string  `json:"location,omitempty"`
	Bio       string  `json:"bio,omitempty"`
	AvatarURL string  `json:"profile_picture_url,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`

	FollowersCount int `json:"followers_count,omitempty"`
	FollowingCount int `json:"following_count,omitempty"`
	ReviewsCount   int `json:"reviews_count,omitempty"`
}

// DisplayName returns "First Last" when available, the username otherwise.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Credential is the {token, user} pair identifying an authenticated client.
// Token and user are always persisted and cleared together.
type Credential struct {
	Token string
	User  User
}

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
