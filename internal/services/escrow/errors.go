package escrow

import "errors"

var (
	ErrMerchantIDRequired = errors.New("merchant id is required")
	ErrMerchantNotFound   = errors.New("merchant not found")
)
