package entity

// PasswordStrength is the signup form's strength hint.
type PasswordStrength string

const (
	PasswordWeak   PasswordStrength = "Weak"
	PasswordMedium PasswordStrength = "Medium"
	PasswordStrong PasswordStrength = "Strong"
)

// EvaluatePasswordStrength scores one point each for length >= 8, mixed case,
// a digit and a character that is neither letter nor digit.
func EvaluatePasswordStrength(password string) PasswordStrength {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if other {
		score++
	}

	switch {
	case score <= 1:
		return PasswordWeak
	case score <= 3:
		return PasswordMedium
	default:
		return PasswordStrong
	}
}
