// Package models defines the User and Address records exchanged with the
// backend, the client-side form drafts built from user input, and their
// validation rules.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID is a server-assigned record identifier.
type ID int64

// String renders the identifier the way it appears in URLs.
func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool { return id == 0 }

var ErrInvalidID = errors.New("invalid id")

// ParseID parses a decimal identifier. An empty string yields the zero ID.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(v), nil
}

// UserStatus is the lifecycle state of a user account.
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

// UserStatuses lists the accepted statuses in display order.
var UserStatuses = []UserStatus{StatusActive, StatusInactive, StatusSuspended}

var ErrUnknownStatus = errors.New("unknown user status")

// ParseUserStatus accepts any letter case.
func ParseUserStatus(s string) (UserStatus, error) {
	st := UserStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range UserStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// User is a user record as returned by the backend. The password is
// write-only and is therefore never decoded.
type User struct {
	UserID             ID            `json:"userId"`
	UserName           string        `json:"userName"`
	UserPhoneNumber    string        `json:"userPhoneNumber"`
	Status             UserStatus    `json:"status"`
	DateOfRegistration LocalDateTime `json:"dateOfRegistration"`
	Addresses          []Address     `json:"addresses"`
}

// UserPayload is the request body of POST /users and PUT /users/{id}.
// A blank password is omitted, which the backend treats as "unchanged"
// on update.
type UserPayload struct {
	UserName        string          `json:"userName"`
	UserPassword    string          `json:"userPassword,omitempty"`
	UserPhoneNumber string          `json:"userPhoneNumber"`
	Status          UserStatus      `json:"status"`
	Addresses       []AddressFields `json:"addresses"`
}
