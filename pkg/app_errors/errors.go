package apperrors

import "errors"

// Kind 錯誤分類，handler 依此決定 HTTP status
type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidOperation   Kind = "invalid_operation"
	KindValidation         Kind = "validation"
	KindInternal           Kind = "internal"
)

// Error 帶有穩定 Kind 的領域錯誤
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrUnauthenticated = New(KindUnauthenticated, "authentication required")

	ErrForbidden       = New(KindForbidden, "forbidden")
	ErrAdminRequired   = New(KindForbidden, "admin privileges required")
	ErrNotEventOwner   = New(KindForbidden, "you are not the owner of this event")
	ErrNotTicketHolder = New(KindForbidden, "you are not the participant of this ticket")
	ErrUserBanned      = New(KindForbidden, "user is banned")

	ErrUserNotFound   = New(KindNotFound, "user not found")
	ErrEventNotFound  = New(KindNotFound, "event not found")
	ErrTicketNotFound = New(KindNotFound, "ticket not found")

	ErrUsernameTaken     = New(KindConflict, "username is already taken")
	ErrAlreadyRegistered = New(KindConflict, "already registered for this event")

	ErrInvalidCredentials = New(KindInvalidCredentials, "invalid username or password")
	ErrWrongPassword      = New(KindInvalidCredentials, "current password is incorrect")

	ErrCannotBanSelf       = New(KindInvalidOperation, "admin cannot ban themselves")
	ErrEventAlreadyStarted = New(KindInvalidOperation, "event has already started, cancellation is closed")

	ErrInvalidInput = New(KindValidation, "invalid input")

	ErrInternalServerError = New(KindInternal, "internal server error")
)

// KindOf 回傳錯誤鏈中第一個 *Error 的 Kind，未分類的錯誤一律視為 internal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf 回傳可對外顯示的訊息；internal 錯誤不洩漏細節
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return ErrInternalServerError.Message
}
