package portfolio

import "errors"

var (
	// ErrInvalidInput is returned when a symbol is empty or a quantity is not positive.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQuoteUnavailable is returned when the quote source could not supply a price.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrInsufficientData is returned when a series is too short to compute volatility.
	ErrInsufficientData = errors.New("insufficient data")
)
