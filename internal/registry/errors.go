package registry

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/paycharts/internal/models"
)

// ErrorKind identifies the category of a bridge failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindMissingDependency means no renderer is registered for the chart kind.
	KindMissingDependency
	// KindMissingMountTarget means the target id is not in the document.
	KindMissingMountTarget
	// KindMalformedConfig means an auto-render attribute could not be decoded.
	KindMalformedConfig
	// KindRenderFailure means the renderer returned an error or panicked.
	KindRenderFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingDependency:
		return "missing_dependency"
	case KindMissingMountTarget:
		return "missing_mount_target"
	case KindMalformedConfig:
		return "malformed_config"
	case KindRenderFailure:
		return "render_failure"
	default:
		return "unknown"
	}
}

var (
	ErrMissingDependency  = errors.New("chart renderer is not available")
	ErrMissingMountTarget = errors.New("mount target not found")
	ErrMalformedConfig    = errors.New("malformed chart configuration")
	ErrRenderFailure      = errors.New("chart render failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissingDependency:
		return ErrMissingDependency
	case KindMissingMountTarget:
		return ErrMissingMountTarget
	case KindMalformedConfig:
		return ErrMalformedConfig
	case KindRenderFailure:
		return ErrRenderFailure
	default:
		return nil
	}
}

type BridgeError struct {
	Op     string
	Kind   ErrorKind
	Chart  models.ChartKind
	Target string
	Err    error
}

func (e *BridgeError) Error() string {
	op := e.Op
	if e.Chart != "" {
		op += " " + string(e.Chart)
	}
	if e.Target != "" {
		return fmt.Sprintf("%s [%s] target=%s: %v", op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind, so errors.Is(err,
// ErrMissingMountTarget) holds whatever the underlying cause is.
func (e *BridgeError) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

func KindOf(err error) ErrorKind {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) {
		return bridgeErr.Kind
	}
	return KindUnknown
}
