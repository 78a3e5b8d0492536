package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/mdd/internal/common"
)

const (
	usernameMin = 3
	usernameMax = 20
	emailMax    = 100
	passwordMin = 8
	// bcrypt reads at most 72 bytes.
	passwordMax    = 72
	titleMax       = 200
	subjectNameMax = 100
	descriptionMax = 1000
	commentMax     = 2000
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkUsername(v *common.ValidationError, username string) {
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		v.Add("username", "username is required")
	case n < usernameMin || n > usernameMax:
		v.Add("username", fmt.Sprintf("username must be between %d and %d characters", usernameMin, usernameMax))
	case !usernamePattern.MatchString(username):
		v.Add("username", "username may only contain letters, digits, underscores and hyphens")
	}
}

func checkEmail(v *common.ValidationError, email string) {
	if email == "" {
		v.Add("email", "email is required")
		return
	}
	if len(email) > emailMax {
		v.Add("email", fmt.Sprintf("email must be at most %d characters", emailMax))
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		v.Add("email", "email must be a valid email address")
	}
}

func checkPassword(v *common.ValidationError, password string) {
	if password == "" {
		v.Add("password", "password is required")
		return
	}
	if len(password) < passwordMin || len(password) > passwordMax {
		v.Add("password", fmt.Sprintf("password must be between %d and %d characters", passwordMin, passwordMax))
		return
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		v.Add("password", "password must contain at least one lowercase letter, one uppercase letter and one digit")
	}
}

// checkText enforces a required field with a maximum length in characters.
func checkText(v *common.ValidationError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
		return
	}
	if utf8.RuneCountInString(value) > max {
		v.Add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

func checkID(v *common.ValidationError, field string, id int64) {
	if id <= 0 {
		v.Add(field, field+" is required")
	}
}
