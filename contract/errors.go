package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContract is returned for contracts that are malformed, miss
	// a required field or can't be serialized canonically.
	ErrInvalidContract = errors.New("invalid contract")
	// ErrEncoding is returned for fields or hashes whose bytes have the
	// wrong length or format. Errors about contract fields wrap both
	// ErrEncoding and ErrInvalidContract.
	ErrEncoding = errors.New("invalid encoding")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidContract, fmt.Sprintf(format, args...))
}

func encodingf(format string, args ...interface{}) error {
	return fmt.Errorf(
		"%w: %w: %s", ErrInvalidContract, ErrEncoding,
		fmt.Sprintf(format, args...),
	)
}
