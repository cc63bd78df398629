package entity

// NewsletterSubscription is a stored newsletter sign-up.
type NewsletterSubscription struct {
	Email string `json:"email"`
	Date  string `json:"date"` // RFC 3339 timestamp.
}
