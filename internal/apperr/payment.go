package apperr

var (
	ErrMissingPaymentFields = &DomainError{
		Kind:    KindBadRequest,
		Code:    "MISSING_PAYMENT_FIELDS",
		Message: "groupId, shopUpiId and totalAmount are required",
	}
	ErrMissingLinkFields = &DomainError{
		Kind:    KindBadRequest,
		Code:    "MISSING_LINK_FIELDS",
		Message: "upiId, name and amount are required",
	}
	ErrInvalidAmount = &DomainError{
		Kind:    KindBadRequest,
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
	}
	ErrNoMembers = &DomainError{
		Kind:    KindBadRequest,
		Code:    "NO_MEMBERS",
		Message: "group has no members to split the payment between",
	}
)
