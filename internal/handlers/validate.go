package handlers

import "regexp"

// Field validation rules. Handles and passwords are length-bounded;
// the password class admits the common special characters.
var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,16}$`)
	passwordRe = regexp.MustCompile("^[A-Za-z\\d!@#$%^&*()_+~`\\-]{5,16}$")
	fullnameRe = regexp.MustCompile(`^[a-zA-Z]+(?: [a-zA-Z]+)?$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validUsername(s string) bool { return usernameRe.MatchString(s) }
func validPassword(s string) bool { return passwordRe.MatchString(s) }
func validFullname(s string) bool { return fullnameRe.MatchString(s) }
func validEmail(s string) bool    { return emailRe.MatchString(s) }

// validateRegistration collects field-level messages; an empty slice
// means the input is acceptable.
func validateRegistration(username, email, fullname, password string) []string {
	var errs []string
	if !validUsername(username) {
		errs = append(errs, "username must be 3-16 characters: letters, digits or underscore")
	}
	if !validEmail(email) {
		errs = append(errs, "email is not a valid address")
	}
	if !validFullname(fullname) {
		errs = append(errs, "fullname must be one or two alphabetic words")
	}
	if !validPassword(password) {
		errs = append(errs, "password must be 5-16 characters: letters, digits or special characters")
	}
	return errs
}
