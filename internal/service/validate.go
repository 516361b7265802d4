package service

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// passwordSymbols is the fixed set of characters accepted as the symbol component.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?`~|\\"

// ValidationError reports the first violated input rule. Its message is returned
// to the client verbatim.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string { return e.message }

// RegistrationInput is the raw signup payload before validation.
type RegistrationInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput is the raw signin payload before validation.
type LoginInput struct {
	Email    string
	Password string
}

func validateRegistration(in RegistrationInput) error {
	if err := validateName("firstName", in.FirstName); err != nil {
		return err
	}
	if err := validateName("lastName", in.LastName); err != nil {
		return err
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

func validateLogin(in LoginInput) error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

func validateName(field, value string) error {
	if value == "" {
		return &ValidationError{message: field + " is required"}
	}
	if utf8.RuneCountInString(value) < 3 {
		return &ValidationError{message: field + " length must be at least 3 characters long"}
	}
	return nil
}

func validateEmail(value string) error {
	if value == "" {
		return &ValidationError{message: "email is required"}
	}
	if utf8.RuneCountInString(value) < 3 {
		return &ValidationError{message: "email length must be at least 3 characters long"}
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return &ValidationError{message: "email must be a valid email"}
	}
	domainPart := value[strings.LastIndex(value, "@")+1:]
	if !strings.Contains(domainPart, ".") {
		return &ValidationError{message: "email must be a valid email"}
	}
	return nil
}

func validatePassword(value string) error {
	if value == "" {
		return &ValidationError{message: "password is required"}
	}

	hasLetter := strings.ContainsFunc(value, unicode.IsLetter)
	hasDigit := strings.ContainsFunc(value, unicode.IsDigit)
	hasSymbol := strings.ContainsAny(value, passwordSymbols)
	if utf8.RuneCountInString(value) < 8 || !hasLetter || !hasDigit || !hasSymbol {
		return &ValidationError{message: "password must be at least 8 characters and contain a letter, a number and a symbol"}
	}
	return nil
}
