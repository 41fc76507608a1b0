package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("illegal transition of order status")
)
