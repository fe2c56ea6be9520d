package types

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrPartnerNotFound = errors.New("partner not found")
)
