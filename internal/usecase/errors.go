package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrAlreadyExists         = errors.New("resource already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Wallet provider failures, mapped from numeric RPC error codes by the
	// chain gateway client.
	ErrWalletDenied  = errors.New("transaction denied in wallet")
	ErrChainBusy     = errors.New("wallet request already processing")
	ErrAlreadyMinted = errors.New("card is already minted")
)
