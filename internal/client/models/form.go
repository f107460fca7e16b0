package models

import "slices"

// UserForm is the draft behind the create/edit user form. Addresses holds
// the nested address drafts submitted together with a new user.
type UserForm struct {
	UserName        string
	UserPassword    string
	UserPhoneNumber string
	Status          UserStatus
	Addresses       []AddressFields
}

// NewUserForm returns the blank create form.
func NewUserForm() UserForm {
	return UserForm{Status: StatusActive, Addresses: []AddressFields{}}
}

// EditUserForm prefills the form from an existing user. The password is
// never copied.
func EditUserForm(u User) UserForm {
	f := UserForm{
		UserName:        u.UserName,
		UserPhoneNumber: u.UserPhoneNumber,
		Status:          u.Status,
		Addresses:       make([]AddressFields, 0, len(u.Addresses)),
	}
	for _, a := range u.Addresses {
		f.Addresses = append(f.Addresses, a.Fields())
	}
	return f
}

// Clone returns a deep copy.
func (f UserForm) Clone() UserForm {
	f.Addresses = slices.Clone(f.Addresses)
	if f.Addresses == nil {
		f.Addresses = []AddressFields{}
	}
	return f
}

// Payload builds the request body. Addresses is always a JSON array.
func (f UserForm) Payload() UserPayload {
	addresses := make([]AddressFields, len(f.Addresses))
	copy(addresses, f.Addresses)
	return UserPayload{
		UserName:        f.UserName,
		UserPassword:    f.UserPassword,
		UserPhoneNumber: f.UserPhoneNumber,
		Status:          f.Status,
		Addresses:       addresses,
	}
}

// NewAddressDraft returns the blank nested address draft.
func NewAddressDraft() AddressFields {
	return AddressFields{AddressType: AddressHome}
}

// AddressForm is the draft behind the standalone address form.
type AddressForm struct {
	UserID      ID
	FullAddress string
	AddressType AddressType
}

// NewAddressForm returns the blank create form.
func NewAddressForm() AddressForm {
	return AddressForm{AddressType: AddressHome}
}

// EditAddressForm prefills the form from an existing address.
func EditAddressForm(a Address) AddressForm {
	return AddressForm{UserID: a.UserID, FullAddress: a.FullAddress, AddressType: a.AddressType}
}

// CreatePayload builds the POST /addresses body.
func (f AddressForm) CreatePayload() NewAddress {
	return NewAddress{UserID: f.UserID, AddressFields: f.UpdatePayload()}
}

// UpdatePayload builds the PUT /addresses/{id} body; the owner is immutable
// and never sent.
func (f AddressForm) UpdatePayload() AddressFields {
	return AddressFields{FullAddress: f.FullAddress, AddressType: f.AddressType}
}
