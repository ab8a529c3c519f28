package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// validation errors, rejected before any state read
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrPriceRequired   = errors.New("need to specify list record")

	// state errors, rejected after lookup with no mutation performed
	ErrListingNotFound   = errors.New("not listed or already delisted")
	ErrOfferNotFound     = errors.New("offer not found")
	ErrOfferExpired      = errors.New("offer already expired")
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrAuctionFinished   = errors.New("auction already finished")
	ErrAuctionInProgress = errors.New("auction already in progress")

	// authorization errors
	ErrSelfTrade    = errors.New("origin equals to the owner")
	ErrUnauthorized = errors.New("caller is not permitted")

	// ledger errors
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)
