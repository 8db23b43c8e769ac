package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// HealthResponse health response
type HealthResponse struct {

	// Whether CDP credentials could be resolved
	// Required: true
	Configured *bool `json:"configured"`

	// Status
	// Required: true
	Status *string `json:"status"`

	// Build version of the running service
	Version string `json:"version,omitempty"`
}

// Validate validates this health response
func (m *HealthResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("configured", "body", m.Configured); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this health response based on context it is used
func (m *HealthResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *HealthResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// ConfigResponse non-secret service configuration
type ConfigResponse struct {

	// Whether CDP credentials could be resolved
	// Required: true
	Configured *bool `json:"configured"`

	// CDP project identifier
	ProjectID string `json:"projectId"`

	// Asset symbols used when the caller does not specify any
	// Required: true
	SupportedAssets []string `json:"supportedAssets"`

	// Chain identifiers used when the caller does not specify any
	// Required: true
	SupportedChains []string `json:"supportedChains"`
}

// Validate validates this config response
func (m *ConfigResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("configured", "body", m.Configured); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("supportedAssets", "body", m.SupportedAssets); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("supportedChains", "body", m.SupportedChains); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this config response based on context it is used
func (m *ConfigResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *ConfigResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// BridgeStatsResponse bridge stats response
type BridgeStatsResponse struct {

	// Average bridge duration in seconds
	// Required: true
	AverageBridgeSeconds *float64 `json:"averageBridgeSeconds"`

	// Number of bridges currently in flight
	// Required: true
	// Minimum: 0
	ActiveBridges *int64 `json:"activeBridges"`

	// Total number of bridge transactions
	// Required: true
	// Minimum: 0
	TotalTransactions *int64 `json:"totalTransactions"`

	// Total bridged volume in USD
	// Required: true
	TotalVolumeUSD *float64 `json:"totalVolumeUsd"`

	// Last update
	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"updatedAt,omitempty"`
}

// Validate validates this bridge stats response
func (m *BridgeStatsResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("averageBridgeSeconds", "body", m.AverageBridgeSeconds); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("activeBridges", "body", m.ActiveBridges); err != nil {
		res = append(res, err)
	} else if err := validate.MinimumInt("activeBridges", "body", *m.ActiveBridges, 0, false); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("totalTransactions", "body", m.TotalTransactions); err != nil {
		res = append(res, err)
	} else if err := validate.MinimumInt("totalTransactions", "body", *m.TotalTransactions, 0, false); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("totalVolumeUsd", "body", m.TotalVolumeUSD); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this bridge stats response based on context it is used
func (m *BridgeStatsResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *BridgeStatsResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}
