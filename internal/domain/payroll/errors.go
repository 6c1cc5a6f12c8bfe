package payroll

import "errors"

var (
	ErrStoreSettingsNotFound = errors.New("store settings not found")
	ErrStoreScopeRequired    = errors.New("store_id claim is missing or invalid")
)
