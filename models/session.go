package models

// Session is the locally cached identity. It drives navigation and is
// attached to API calls as a user id; it is not a trust boundary.
type Session struct {
	ID        int64  `json:"id" example:"7" format:"int64"`
	Username  string `json:"username" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Valid reports whether the cached value carries the minimum identity.
func (s *Session) Valid() bool {
	return s != nil && s.ID > 0 && s.Username != ""
}
