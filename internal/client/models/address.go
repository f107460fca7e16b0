package models

import (
	"errors"
	"fmt"
	"strings"
)

// AddressType classifies an address.
type AddressType string

const (
	AddressHome   AddressType = "HOME"
	AddressOffice AddressType = "OFFICE"
	AddressOther  AddressType = "OTHER"
)

// AddressTypes lists the accepted types in display order.
var AddressTypes = []AddressType{AddressHome, AddressOffice, AddressOther}

var ErrUnknownAddressType = errors.New("unknown address type")

// ParseAddressType accepts any letter case.
func ParseAddressType(s string) (AddressType, error) {
	t := AddressType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AddressTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAddressType, s)
}

// Address is an address record as returned by the backend.
type Address struct {
	AddressID   ID          `json:"addressId"`
	UserID      ID          `json:"userId"`
	FullAddress string      `json:"fullAddress"`
	AddressType AddressType `json:"addressType"`
}

// Fields strips the identifiers.
func (a Address) Fields() AddressFields {
	return AddressFields{FullAddress: a.FullAddress, AddressType: a.AddressType}
}

// AddressFields is the mutable part of an address. It is used for nested
// address drafts inside a user payload and as the PUT /addresses/{id} body,
// which must not carry userId.
type AddressFields struct {
	FullAddress string      `json:"fullAddress"`
	AddressType AddressType `json:"addressType"`
}

// NewAddress is the request body of POST /addresses.
type NewAddress struct {
	UserID ID `json:"userId"`
	AddressFields
}
