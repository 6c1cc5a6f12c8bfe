package profile

import "context"

// ProfileRepository defines data access methods for store profiles.
type ProfileRepository interface {
	// ListCommissionEligible returns the casts of a store together with their assigned salary system.
	ListCommissionEligible(ctx context.Context, storeID string) ([]Profile, error)
}
