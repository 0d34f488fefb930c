package inspection

import "errors"

var (
	ErrLotNotFound  = errors.New("lot not found")
	ErrItemNotFound = errors.New("lot item not found")
	ErrInvalidCause = errors.New("rejection cause must be Color or Weight")

	// Precondition violations; the caller is at fault and nothing is mutated.
	ErrNotReturned       = errors.New("item has not been returned to the dyeing house")
	ErrNotWeightRejected = errors.New("item is not weight-rejected")
	ErrNotArchivable     = errors.New("item has no completed return/rereceive cycle to archive")
	ErrNegativeQuantity  = errors.New("weight quantity must be non-negative")
)
