package httperr

import "errors"

// Kind groups business errors by how the caller should react to them.
type Kind int

const (
	KindBusiness Kind = iota
	KindNotFound
	KindValidation
	KindSchedulingConflict
	KindConcurrency
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindSchedulingConflict:
		return "scheduling_conflict"
	case KindConcurrency:
		return "concurrency"
	case KindForbidden:
		return "forbidden"
	default:
		return "business"
	}
}

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrRecordNotFound is returned by repositories when a tenant-scoped lookup
// matches nothing. Use cases turn it into a coded NotFound error.
var ErrRecordNotFound = errors.New("record_not_found")

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindSchedulingConflict, Code: code}
}

func ErrConcurrency(code string) error {
	return BusinessError{Kind: KindConcurrency, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of a business error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
