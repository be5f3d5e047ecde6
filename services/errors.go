package services

import "errors"

var (
	// ErrReservationNotFound is returned when the referenced reservation
	// does not exist or no longer satisfies the state precondition for
	// the requested action (e.g. refund no longer 'requested').
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrNotEligible is returned when a receipt is requested for a
	// reservation that is not paid or already has a receipt.
	ErrNotEligible = errors.New("reservation not eligible for receipt")

	// ErrReceiptNotIssued is returned when an email send is requested
	// before the receipt has been generated.
	ErrReceiptNotIssued = errors.New("receipt has not been issued")

	// ErrInvalidPaymentStatus rejects any settlement status other than
	// 'paid' or 'rejected' before the store is touched.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidRefundAction rejects any adjudication action other than
	// 'approved' or 'rejected'.
	ErrInvalidRefundAction = errors.New("invalid refund action")

	// ErrPaymentFinal guards the one-way settlement transition: once a
	// reservation is paid, no further settlement may touch it.
	ErrPaymentFinal = errors.New("payment already settled as paid")

	// ErrRefundAlreadyOpen guards against a second refund request while
	// one is pending or adjudicated.
	ErrRefundAlreadyOpen = errors.New("refund already requested for this reservation")

	// ErrPolicyInUse is returned when a policy edit would change the
	// cancellation window of existing reservations.
	ErrPolicyInUse = errors.New("policy is referenced by existing reservations")
)
