package serrors

import "fmt"

// Base is a coded error. Code is a stable machine-readable identifier,
// Message is for logs and API payloads, Hint is an optional operator hint.
type Base struct {
	Code    string
	Message string
	Hint    string
}

func NewError(code, message, hint string) *Base {
	return &Base{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

func (e *Base) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Hint)
}

func (e *Base) Is(target error) bool {
	other, ok := target.(*Base)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

// WithMessage returns a copy of the error with a more specific message,
// keeping the code so errors.Is against the sentinel still matches.
func (e *Base) WithMessage(format string, args ...any) *Base {
	return &Base{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Hint:    e.Hint,
	}
}
