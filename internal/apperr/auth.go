package apperr

var (
	ErrMissingCredentials = &DomainError{
		Kind:    KindBadRequest,
		Code:    "MISSING_CREDENTIALS",
		Message: "email and password are required",
	}
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthenticated,
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
	}
	ErrMissingRegistrationFields = &DomainError{
		Kind:    KindBadRequest,
		Code:    "MISSING_FIELDS",
		Message: "name, email and password are required",
	}
	ErrEmailTaken = &DomainError{
		Kind:    KindBadRequest,
		Code:    "EMAIL_TAKEN",
		Message: "an account with this email already exists",
	}
	ErrNameTaken = &DomainError{
		Kind:    KindBadRequest,
		Code:    "NAME_TAKEN",
		Message: "this username is already taken",
	}
	ErrWeakPassword = &DomainError{
		Kind:    KindBadRequest,
		Code:    "WEAK_PASSWORD",
		Message: "password must be at least 8 characters and contain a special character",
	}
	ErrIncorrectPassword = &DomainError{
		Kind:    KindBadRequest,
		Code:    "INCORRECT_PASSWORD",
		Message: "current password is incorrect",
	}
	ErrInvalidResetToken = &DomainError{
		Kind:    KindBadRequest,
		Code:    "INVALID_RESET_TOKEN",
		Message: "reset token is invalid or has expired",
	}
	ErrUserNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
)
