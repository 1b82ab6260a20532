package render

import (
	"testing"

	"github.com/cockroachdb/errors"
	qt "github.com/frankban/quicktest"
)

func TestBuildErrorMessage(t *testing.T) {
	c := qt.New(t)

	err := newError(CreateSwapChainError, ErrorOutOfDate, errors.New("vkCreateSwapchainKHR"))
	c.Assert(err, qt.ErrorMatches, `CreateSwapChainError \(VK_ERROR_OUT_OF_DATE_KHR\): vkCreateSwapchainKHR`)

	err = supportError("no physical device passed the suitability checks", ErrNoSuitableDevice)
	c.Assert(err, qt.ErrorMatches, "SupportError: no physical device passed the suitability checks: supported device not found")
	c.Assert(errors.Is(err, ErrNoSuitableDevice), qt.IsTrue)

	err = newError(LoadLibraryError, Success, nil)
	c.Assert(err, qt.ErrorMatches, "LoadLibraryError")
}

func TestKind(t *testing.T) {
	c := qt.New(t)

	wrapped := errors.Wrap(newError(QueueSubmitError, ErrorDeviceLost, nil), "frame 12")
	kind, ok := Kind(wrapped)
	c.Assert(ok, qt.IsTrue)
	c.Assert(kind, qt.Equals, QueueSubmitError)

	_, ok = Kind(errors.New("plain"))
	c.Assert(ok, qt.IsFalse)
}

func TestStrings(t *testing.T) {
	c := qt.New(t)

	c.Assert(ResetFenceError.String(), qt.Equals, "ResetFenceError")
	c.Assert(ErrorKind(99).String(), qt.Equals, "ErrorKind(99)")
	c.Assert(Suboptimal.String(), qt.Equals, "VK_SUBOPTIMAL_KHR")
	c.Assert(Code(-42).String(), qt.Equals, "VkResult(-42)")
	c.Assert(PresentModeMailbox.String(), qt.Equals, "Mailbox")
	c.Assert(DeviceTypeDiscreteGPU.String(), qt.Equals, "Discrete GPU")
}
