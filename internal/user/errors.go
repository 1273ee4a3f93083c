package user

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrInvalidUser  = errors.New("invalid user")
)

func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidUser, reason)
}

func InvalidReason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidUser.Error()+": ")
}
