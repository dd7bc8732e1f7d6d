package caseerr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation               = errors.New("validation error")
	ErrUnsupportedPhysics       = errors.New("unsupported physics")
	ErrInvalidDirectionFace     = errors.New("invalid direction face")
	ErrIncompatibleBoundaryType = errors.New("incompatible boundary type")
	ErrMissingSourceBoundary    = errors.New("no source boundary selected")
	ErrUnknownBoundary          = errors.New("unknown boundary")
	ErrMissingViscosity         = errors.New("missing viscosity")
	ErrInvalidGeometry          = errors.New("invalid geometry")
	ErrUnsupportedPorousModel   = errors.New("unsupported porous model")
)

// Error carries the kind of a case-write failure along with the label or value that caused it.
type Error struct {
	Kind    error
	Subject string
	Msg     string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Subject == "" && e.Msg == "":
		return e.Kind.Error()
	case e.Subject == "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("%s: '%s'", e.Kind.Error(), e.Subject)
	}
	return fmt.Sprintf("%s: '%s': %s", e.Kind.Error(), e.Subject, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, subject, format string, args ...any) error {
	return &Error{Kind: kind, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(subject, format string, args ...any) error {
	return New(ErrValidation, subject, format, args...)
}

func Unsupportedf(subject, format string, args ...any) error {
	return New(ErrUnsupportedPhysics, subject, format, args...)
}

// Subject returns the offending label or value recorded in err, if any.
func Subject(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Subject
	}
	return ""
}
