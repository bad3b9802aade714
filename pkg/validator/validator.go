package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	passwordRegex = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=[\]{};':"\\|,.<>/?]{6,}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	return passwordRegex.MatchString(password)
}

func ValidateNamePart(name string) bool {
	if len(name) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' {
			return false
		}
	}

	return true
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '\'' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}
