package user

import "encoding/json"

// RedeemLicenseKeyRequest is the body of POST /api/redeem-license-key
type RedeemLicenseKeyRequest struct {
	Key        string `json:"key" validate:"max=64"`
	LicenseKey string `json:"licenseKey" validate:"max=64"`
}

// ResolvedKey returns whichever key field the client filled in
func (r *RedeemLicenseKeyRequest) ResolvedKey() string {
	if r.Key != "" {
		return r.Key
	}
	return r.LicenseKey
}

// UpdatePreferencesRequest is the body of PUT /api/user/preferences
type UpdatePreferencesRequest struct {
	Preferences json.RawMessage `json:"preferences" validate:"required"`
}
