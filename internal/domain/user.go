package domain

type User struct {
	Id        UserId
	Email     string
	Admin     bool
	Moderator bool
	Trusted   bool
}

// TrustedAccess reports whether the user may see trust-gated threads.
// A nil user is an anonymous viewer.
func (u *User) TrustedAccess() bool {
	return u != nil && (u.Trusted || u.Moderator || u.Admin)
}
