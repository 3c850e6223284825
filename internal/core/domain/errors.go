package domain

import "errors"

// Ошибки-переменные, которые могут быть возвращены из Use Cases.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInquiryNotFound  = errors.New("inquiry not found")
	ErrDealNotFound     = errors.New("deal not found")

	// ErrActiveDealExists - нарушение инварианта "не больше одной
	// неотмененной сделки на объект"
	ErrActiveDealExists = errors.New("property already has an active deal")

	ErrInvalidDealTerms = errors.New("invalid deal terms")
)

// InvalidStateError - запрошенный переход недопустим из текущего статуса.
// Причина человекочитаемая и отдается вызывающему как есть.
type InvalidStateError struct {
	Entity string
	Reason string
}

func NewInvalidStateError(entity, reason string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// IsInvalidState проверяет, является ли ошибка ошибкой недопустимого перехода
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}
