package render

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind identifies the native operation a BuildError came from.
type ErrorKind int

const (
	LoadLibraryError ErrorKind = iota
	CreateEntryError
	SupportError
	CreateInstanceError
	ChoosePhysicalDeviceError
	CreateLogicalDeviceError
	CreateSwapChainError
	CreateRenderPassError
	LoadShadersError
	CreatePipelineLayoutError
	BuildPipelinesError
	CreateFrameBufferError
	CreateCommandPoolError
	CreateCommandBufferError
	CreateSyncObjectsError
	AcquireImageError
	QueueSubmitError
	PresentationError
	WaitForFencesError
	ResetFenceError
)

var kindNames = [...]string{
	LoadLibraryError:          "LoadLibraryError",
	CreateEntryError:          "CreateEntryError",
	SupportError:              "SupportError",
	CreateInstanceError:       "CreateInstanceError",
	ChoosePhysicalDeviceError: "ChoosePhysicalDeviceError",
	CreateLogicalDeviceError:  "CreateLogicalDeviceError",
	CreateSwapChainError:      "CreateSwapChainError",
	CreateRenderPassError:     "CreateRenderPassError",
	LoadShadersError:          "LoadShadersError",
	CreatePipelineLayoutError: "CreatePipelineLayoutError",
	BuildPipelinesError:       "BuildPipelinesError",
	CreateFrameBufferError:    "CreateFrameBufferError",
	CreateCommandPoolError:    "CreateCommandPoolError",
	CreateCommandBufferError:  "CreateCommandBufferError",
	CreateSyncObjectsError:    "CreateSyncObjectsError",
	AcquireImageError:         "AcquireImageError",
	QueueSubmitError:          "QueueSubmitError",
	PresentationError:         "PresentationError",
	WaitForFencesError:        "WaitForFencesError",
	ResetFenceError:           "ResetFenceError",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var (
	// ErrNoSuitableDevice is wrapped by the SupportError returned when every
	// enumerated physical device was rejected.
	ErrNoSuitableDevice = errors.New("supported device not found")

	// ErrUnsupportedWindow is returned by Instance.CreateSurface for window
	// systems the driver cannot present to.
	ErrUnsupportedWindow = errors.New("unsupported window system")

	// ErrStageConsumed is returned when a build stage is advanced twice.
	ErrStageConsumed = errors.New("build stage already consumed")

	// ErrContextDestroyed is returned when drawing with a destroyed context.
	ErrContextDestroyed = errors.New("rendering context destroyed")
)

// BuildError is the error returned by every fallible build stage and by frame submission.
type BuildError struct {
	Kind ErrorKind

	// Code is the native status code, Success when the failure was not a native call.
	Code Code

	// Reason is a human readable explanation for support and suitability failures.
	Reason string

	cause error
}

func (e *BuildError) Error() string {
	msg := e.Kind.String()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Code != Success {
		msg += fmt.Sprintf(" (%s)", e.Code)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() error { return e.cause }

func newError(kind ErrorKind, code Code, cause error) error {
	return errors.WithStack(&BuildError{Kind: kind, Code: code, cause: cause})
}

func supportError(reason string, cause error) error {
	return errors.WithStack(&BuildError{Kind: SupportError, Reason: reason, cause: cause})
}

// Kind reports the ErrorKind of err and whether err carries a BuildError at all.
func Kind(err error) (ErrorKind, bool) {
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		return 0, false
	}
	return buildErr.Kind, true
}
