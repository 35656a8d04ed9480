package viewmodel

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const passwordSymbols = "!@#$%^&*"

// MinPasswordLength is the shortest new password SavePassword accepts.
const MinPasswordLength = 8

// Strength labels. An empty label means no meaningful strength yet.
const (
	StrengthNone   = ""
	StrengthWeak   = "Weak"
	StrengthFair   = "Fair"
	StrengthGood   = "Good"
	StrengthStrong = "Strong"
)

type PasswordStrength struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// EvaluatePasswordStrength scores independent criteria additively, capped at
// 1.0. Points are kept in hundredths so label thresholds compare exactly.
func EvaluatePasswordStrength(password string) PasswordStrength {
	points := 0
	length := utf8.RuneCountInString(password)
	if length >= 8 {
		points += 25
	}
	if length >= 12 {
		points += 15
	}
	if strings.IndexFunc(password, unicode.IsUpper) >= 0 {
		points += 20
	}
	if strings.IndexFunc(password, unicode.IsDigit) >= 0 {
		points += 20
	}
	if strings.ContainsAny(password, passwordSymbols) {
		points += 20
	}
	if points > 100 {
		points = 100
	}

	return PasswordStrength{
		Score: float64(points) / 100,
		Label: strengthLabel(points),
	}
}

func strengthLabel(points int) string {
	switch {
	case points < 1:
		return StrengthNone
	case points < 35:
		return StrengthWeak
	case points < 65:
		return StrengthFair
	case points < 90:
		return StrengthGood
	default:
		return StrengthStrong
	}
}
