package errs

import "errors"

// Kind tags the variant of a Classification.
type Kind int

const (
	// KindUnclassified covers every error that is neither a DomainError nor an
	// InvalidParameterError. Its details never reach the client.
	KindUnclassified Kind = iota
	KindDomain
	KindInvalidParameter
)

func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindInvalidParameter:
		return "invalid_parameter"
	default:
		return "unclassified"
	}
}

// Classification is the outcome of Classify: the variant plus the code and
// client-facing message it maps to.
type Classification struct {
	Kind    Kind
	Code    StatusCode
	Message string

	// Fields carries field errors for logging.
	Fields []FieldError
}

// Classify maps err onto exactly one Classification.
//
// Wrapped errors are inspected through errors.As, so
// fmt.Errorf("creating feedback: %w", errs.NewNotFoundError(...)) is still a
// domain error. When a chain holds both kinds, the outermost one wins.
func Classify(err error) Classification {
	var domainErr *DomainError
	var paramErr *InvalidParameterError

	domainIdx, paramIdx := -1, -1
	for i, e := 0, err; e != nil; i, e = i+1, errors.Unwrap(e) {
		if domainIdx < 0 {
			if d, ok := e.(*DomainError); ok {
				domainErr, domainIdx = d, i
			}
		}
		if paramIdx < 0 {
			if p, ok := e.(*InvalidParameterError); ok {
				paramErr, paramIdx = p, i
			}
		}
	}

	// Fall back to errors.As for joined or multi-wrapped errors the linear walk misses.
	if domainIdx < 0 && paramIdx < 0 {
		if errors.As(err, &domainErr) {
			domainIdx = 0
		} else if errors.As(err, &paramErr) {
			paramIdx = 0
		}
	}

	switch {
	case domainIdx >= 0 && (paramIdx < 0 || domainIdx <= paramIdx):
		return Classification{
			Kind:    KindDomain,
			Code:    domainErr.Code,
			Message: domainErr.Message,
			Fields:  domainErr.Errors,
		}
	case paramIdx >= 0:
		return Classification{
			Kind:    KindInvalidParameter,
			Code:    StatusBadRequest,
			Message: paramErr.Detail(),
			Fields:  paramErr.Errors,
		}
	default:
		return Classification{
			Kind:    KindUnclassified,
			Code:    StatusInternalServerError,
			Message: StatusInternalServerError.Msg(),
		}
	}
}
