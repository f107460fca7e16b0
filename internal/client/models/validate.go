package models

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// User-facing validation messages.
const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgPhoneDigits    = "Phone number must be 10 digits"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidationError is a client-side input failure. It blocks submission and
// never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidPhoneNumber reports whether s is exactly ten decimal digits.
func ValidPhoneNumber(s string) bool { return phonePattern.MatchString(s) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return ValidPhoneNumber(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

type userInput struct {
	UserName        string `validate:"required"`
	UserPassword    string `validate:"required_if=Creating true"`
	UserPhoneNumber string `validate:"required,phone10"`
	Creating        bool
}

type addressInput struct {
	UserID      ID     `validate:"required"`
	FullAddress string `validate:"required"`
}

// Validate checks the required fields and the phone pattern. The password
// is only required when creating.
func (f UserForm) Validate(creating bool) error {
	return translate(validate.Struct(userInput{
		UserName:        f.UserName,
		UserPassword:    f.UserPassword,
		UserPhoneNumber: f.UserPhoneNumber,
		Creating:        creating,
	}))
}

// Validate checks that an owner is selected and the address is not empty.
func (f AddressForm) Validate() error {
	return translate(validate.Struct(addressInput{UserID: f.UserID, FullAddress: f.FullAddress}))
}

// translate maps validator failures onto the two user-facing messages.
// Missing fields win over a malformed phone number.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var phone *ValidationError
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "required_if":
			return &ValidationError{Field: fe.Field(), Message: MsgRequiredFields}
		case "phone10":
			phone = &ValidationError{Field: fe.Field(), Message: MsgPhoneDigits}
		}
	}
	if phone != nil {
		return phone
	}
	return &ValidationError{Field: fieldErrs[0].Field(), Message: MsgRequiredFields}
}
