package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
)

var (
	emailRe  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	otpRe    = regexp.MustCompile(`^[0-9]{6}$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9(][0-9()\-]{6,17}$`)
	timingRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

var genders = map[string]bool{
	"MALE":              true,
	"FEMALE":            true,
	"OTHER":             true,
	"PREFER_NOT_TO_SAY": true,
}

var weekdays = map[string]bool{
	"MONDAY":    true,
	"TUESDAY":   true,
	"WEDNESDAY": true,
	"THURSDAY":  true,
	"FRIDAY":    true,
	"SATURDAY":  true,
	"SUNDAY":    true,
}

// Email trims and checks a local@domain.tld shape.
func Email(s string) (string, *apperrors.Error) {
	s = strings.TrimSpace(s)
	if !emailRe.MatchString(s) {
		return "", apperrors.ErrInvalidEmail
	}
	return s, nil
}

// Password enforces length, uppercase, lowercase and digit, in that order.
// The first rule that fails decides the message.
func Password(s string) *apperrors.Error {
	if len(s) < 8 {
		return apperrors.ErrInvalidPassword.WithMessage("Password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return apperrors.ErrInvalidPassword.WithMessage("Password must contain an uppercase letter")
	}
	if !lower {
		return apperrors.ErrInvalidPassword.WithMessage("Password must contain a lowercase letter")
	}
	if !digit {
		return apperrors.ErrInvalidPassword.WithMessage("Password must contain a digit")
	}
	return nil
}

// OTP checks the exact 6-digit shape, nothing else.
func OTP(s string) (string, *apperrors.Error) {
	s = strings.TrimSpace(s)
	if !otpRe.MatchString(s) {
		return "", apperrors.ErrInvalidOTPFormat
	}
	return s, nil
}

func Name(s string) (string, *apperrors.Error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 2 {
		return "", apperrors.ErrInvalidName
	}
	return s, nil
}

// Age checks an inclusive range; callers pass the pipeline-specific bounds.
func Age(v, min, max int) *apperrors.Error {
	if v < min || v > max {
		return apperrors.ErrInvalidAge.WithMessage(
			"Age must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max))
	}
	return nil
}

func Gender(s string) (string, *apperrors.Error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !genders[s] {
		return "", apperrors.ErrInvalidGender
	}
	return s, nil
}

// Phone strips whitespace and checks a permissive international pattern.
// errCode lets each field (contact, whatsapp, phone) keep its own token.
func Phone(s string, errCode *apperrors.Error) (string, *apperrors.Error) {
	s = spaceRe.ReplaceAllString(s, "")
	// The leading character may be "(", so the pattern alone does not
	// guarantee any digits.
	if !phoneRe.MatchString(s) || !strings.ContainsAny(s, "0123456789") {
		return "", errCode
	}
	return s, nil
}

func Languages(list []string) ([]string, *apperrors.Error) {
	if len(list) == 0 {
		return nil, apperrors.ErrInvalidLanguages
	}
	out := make([]string, 0, len(list))
	for _, l := range list {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, apperrors.ErrInvalidLanguages
		}
		out = append(out, l)
	}
	return out, nil
}

// MinLen trims and enforces a minimum length in runes, reporting errCode on
// failure.
func MinLen(s string, min int, errCode *apperrors.Error) (string, *apperrors.Error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < min {
		return "", errCode
	}
	return s, nil
}

func YearsOfExperience(v int) *apperrors.Error {
	if v < 0 || v > 50 {
		return apperrors.ErrInvalidExperience
	}
	return nil
}

func AvailableDays(list []string) ([]string, *apperrors.Error) {
	if len(list) == 0 {
		return nil, apperrors.ErrInvalidAvailableDays
	}
	out := make([]string, 0, len(list))
	for _, d := range list {
		d = strings.ToUpper(strings.TrimSpace(d))
		if !weekdays[d] {
			return nil, apperrors.ErrInvalidAvailableDays
		}
		out = append(out, d)
	}
	return out, nil
}

// AvailableTiming enforces strict HH:MM-HH:MM with both halves valid
// 24-hour clock times.
func AvailableTiming(s string) (string, *apperrors.Error) {
	s = strings.TrimSpace(s)
	if !timingRe.MatchString(s) {
		return "", apperrors.ErrInvalidTiming
	}
	return s, nil
}
