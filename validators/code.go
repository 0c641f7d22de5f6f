package validators

import (
	"errors"
	"regexp"
)

var (
	ErrCodeInvalid = errors.New("invalid code format")

	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// CodeValidator accepts exactly length digits, matching whatever
// otp.code_length the codes were issued with.
func CodeValidator(code string, length int) error {
	if len(code) != length || !digitsPattern.MatchString(code) {
		return ErrCodeInvalid
	}

	return nil
}
