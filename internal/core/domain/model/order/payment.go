package order

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// PaymentMethod is how the buyer pays.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "CREDIT_CARD"
	DebitCard  PaymentMethod = "DEBIT_CARD"
	UPI        PaymentMethod = "UPI"
	NetBanking PaymentMethod = "NET_BANKING"
	COD        PaymentMethod = "COD"
)

// Validate checks the method against the supported set.
func (m PaymentMethod) Validate() error {
	switch m {
	case CreditCard, DebitCard, UPI, NetBanking, COD:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
}

// PaymentStatus tracks the money side of an order, independent of Status.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Validate checks the status against the supported set.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not supported", string(s)))
}

// ErrPaymentIsNotConstructed is returned when a Payment was not created via NewPayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is the validated payment part of an order.
// transactionID and paidAt are optional; an unset paidAt is the zero EpochMillis.
type Payment struct { //nolint:recvcheck //using for validation
	method        PaymentMethod
	status        PaymentStatus
	transactionID string
	paidAt        kernel.EpochMillis

	guard guard.ConstructorGuard
}

// NewPendingPayment creates the payment of a freshly placed order.
func NewPendingPayment(method PaymentMethod) (Payment, error) {
	return NewPayment(method, PaymentPending, "", 0)
}

// NewPayment validates and creates a Payment. A non-zero paidAt must be a
// 13-digit epoch-millisecond value.
func NewPayment(method PaymentMethod, status PaymentStatus, transactionID string, paidAt kernel.EpochMillis) (Payment, error) {
	p := Payment{
		transactionID: strings.TrimSpace(transactionID),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setMethod(method),
		p.setStatus(status),
		p.setPaidAt(paidAt),
	); err != nil {
		return Payment{}, err
	}

	return p, nil
}

// Validate ensures the payment was created through NewPayment.
func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// Method returns the payment method.
func (p Payment) Method() PaymentMethod { return p.method }

// Status returns the payment status.
func (p Payment) Status() PaymentStatus { return p.status }

// TransactionID returns the gateway transaction id, or "".
func (p Payment) TransactionID() string { return p.transactionID }

// PaidAt returns when the payment completed, or the zero value.
func (p Payment) PaidAt() kernel.EpochMillis { return p.paidAt }

// WithUpdate returns a copy with the given fields replaced. Nil arguments keep
// the current value. The method never changes after placement.
func (p Payment) WithUpdate(status *PaymentStatus, transactionID *string, paidAt *kernel.EpochMillis) (Payment, error) {
	next := p
	if status != nil {
		next.status = *status
	}
	if transactionID != nil {
		next.transactionID = *transactionID
	}
	if paidAt != nil {
		next.paidAt = *paidAt
	}
	return NewPayment(next.method, next.status, next.transactionID, next.paidAt)
}

func (p *Payment) setMethod(method PaymentMethod) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Payment) setPaidAt(paidAt kernel.EpochMillis) error {
	if paidAt.IsZero() {
		return nil
	}
	if _, err := kernel.NewEpochMillis(paidAt.Int64()); err != nil {
		return err
	}
	p.paidAt = paidAt
	return nil
}
