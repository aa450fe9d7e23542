package apperrors

import "errors"

// ErrAccountNotFound indicates that an operation referenced an account id
// that is not registered.
var ErrAccountNotFound = errors.New("account not found")

// ErrInsufficientFunds indicates that a transfer amount exceeds the payer's
// combined cash balance and remaining credit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount indicates a non-positive payment amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrSelfTransfer indicates that payer and payee are the same account.
var ErrSelfTransfer = errors.New("cannot transfer to self")

// ErrSelfFriend indicates a self-referential friend request.
var ErrSelfFriend = errors.New("cannot befriend self")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")
