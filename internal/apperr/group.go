package apperr

var (
	ErrGroupNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "GROUP_NOT_FOUND",
		Message: "group not found",
	}
	ErrNotGroupOwner = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_GROUP_OWNER",
		Message: "only the group owner or an admin can do this",
	}
	ErrNotGroupMember = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_GROUP_MEMBER",
		Message: "you are not a member of this group",
	}
	ErrOwnerCannotLeave = &DomainError{
		Kind:    KindBadRequest,
		Code:    "OWNER_CANNOT_LEAVE",
		Message: "the owner cannot leave the group, delete it instead",
	}
	ErrUnknownUsernames = &DomainError{
		Kind:    KindBadRequest,
		Code:    "UNKNOWN_USERNAMES",
		Message: "one or more usernames do not exist",
	}
	ErrMissingGroupName = &DomainError{
		Kind:    KindBadRequest,
		Code:    "MISSING_GROUP_NAME",
		Message: "group name is required",
	}
	ErrMemberNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "MEMBER_NOT_FOUND",
		Message: "member not found in this group",
	}
)
