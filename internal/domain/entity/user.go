package entity

// User is the signed-in shopper of the profile.
type User struct {
	ID        int64  `json:"id"`        // Milliseconds since epoch at signup; 1 for the demo user.
	Email     string `json:"email"`     // Login email.
	FirstName string `json:"firstName"` // Given name.
	LastName  string `json:"lastName"`  // Family name.
	Phone     string `json:"phone"`     // Contact phone.
	JoinDate  string `json:"joinDate"`  // YYYY-MM-DD.
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
