// Package gate holds the ownership check applied before every mutation of
// an existing resource. Listing and creation paths scope by construction
// and do not go through the gate.
package gate

import "todoboard/internal/apperr"

// RequireOwner returns an AuthorizationError unless the resource owner is
// the requester. resource and id only feed the error message.
func RequireOwner(resource, id, ownerID, requesterID string) error {
	if ownerID != requesterID {
		return &apperr.AuthorizationError{Resource: resource, ID: id}
	}
	return nil
}
