package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PostSessionPayload post session payload
type PostSessionPayload struct {

	// Destination addresses the session token is requested for
	Addresses []*SessionAddress `json:"addresses,omitempty"`

	// Asset filter applied to addresses without their own assets
	Assets []string `json:"assets,omitempty"`

	// Blockchain filter applied to addresses without their own blockchains
	Blockchains []string `json:"blockchains,omitempty"`
}

// Validate validates this post session payload
func (m *PostSessionPayload) Validate(formats strfmt.Registry) error {
	var res []error

	for i := 0; i < len(m.Addresses); i++ {
		if swag.IsZero(m.Addresses[i]) {
			res = append(res, errors.Required("addresses."+swag.FormatInt64(int64(i)), "body", m.Addresses[i]))
			continue
		}
		if err := m.Addresses[i].Validate(formats); err != nil {
			if ve, ok := err.(*errors.Validation); ok {
				return ve.ValidateName("addresses" + "." + swag.FormatInt64(int64(i)))
			} else if ce, ok := err.(*errors.CompositeError); ok {
				return ce.ValidateName("addresses" + "." + swag.FormatInt64(int64(i)))
			}
			return err
		}
	}

	if err := validateNonEmptyStrings("assets", m.Assets); err != nil {
		res = append(res, err)
	}

	if err := validateNonEmptyStrings("blockchains", m.Blockchains); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this post session payload based on context it is used
func (m *PostSessionPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *PostSessionPayload) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation
func (m *PostSessionPayload) UnmarshalBinary(b []byte) error {
	var res PostSessionPayload
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}

// SessionAddress session address
type SessionAddress struct {

	// Wallet address, format depends on the blockchains
	// Required: true
	// Min Length: 1
	Address *string `json:"address"`

	// Asset symbols accepted at this address
	Assets []string `json:"assets,omitempty"`

	// Chain identifiers the address is valid on
	Blockchains []string `json:"blockchains,omitempty"`
}

// Validate validates this session address
func (m *SessionAddress) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("address", "body", *m.Address, 1); err != nil {
		res = append(res, err)
	}

	if err := validateNonEmptyStrings("assets", m.Assets); err != nil {
		res = append(res, err)
	}

	if err := validateNonEmptyStrings("blockchains", m.Blockchains); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SessionTokenResponse session token response
type SessionTokenResponse struct {

	// Diagnostic text describing why a fallback token was issued
	Error string `json:"error,omitempty"`

	// Environment marker of fallback tokens
	Env string `json:"env,omitempty"`

	// Token expiry
	// Required: true
	// Format: date-time
	ExpiresAt *strfmt.DateTime `json:"expires_at"`

	// True if the token was constructed locally and is not accepted by Coinbase
	Fallback bool `json:"fallback"`

	// Where the token came from
	// Required: true
	// Enum: [remote fallback]
	Origin *string `json:"origin"`

	// Session token
	// Required: true
	Token *string `json:"token"`
}

var sessionTokenResponseTypeOriginPropEnum = []interface{}{"remote", "fallback"}

const (

	// SessionTokenResponseOriginRemote captures enum value "remote"
	SessionTokenResponseOriginRemote string = "remote"

	// SessionTokenResponseOriginFallback captures enum value "fallback"
	SessionTokenResponseOriginFallback string = "fallback"
)

// Validate validates this session token response
func (m *SessionTokenResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("expires_at", "body", m.ExpiresAt); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("origin", "body", m.Origin); err != nil {
		res = append(res, err)
	} else if err := validate.EnumCase("origin", "body", *m.Origin, sessionTokenResponseTypeOriginPropEnum, true); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("token", "body", m.Token); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this session token response based on context it is used
func (m *SessionTokenResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *SessionTokenResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation
func (m *SessionTokenResponse) UnmarshalBinary(b []byte) error {
	var res SessionTokenResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}

func validateNonEmptyStrings(path string, values []string) error {
	for i, v := range values {
		if err := validate.MinLength(path+"."+swag.FormatInt64(int64(i)), "body", v, 1); err != nil {
			return err
		}
	}
	return nil
}
