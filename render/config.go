package render

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

const ValidationLayer = "VK_LAYER_KHRONOS_validation"

// Resolution is the requested swap chain size in pixels.
type Resolution struct {
	Width  uint32
	Height uint32
}

// Config controls how the rendering context is built.
type Config struct {
	ApplicationName string

	// UseValidationLayer enables the Khronos validation layer and a debug messenger
	// that forwards its messages to the logger
	UseValidationLayer bool

	// RenderingResolution is the initial swap chain extent request, clamped to what
	// the surface supports
	RenderingResolution Resolution

	// FramePacing creates FramesInFlight signaled fences used to throttle DrawFrame.
	// Without it DrawFrame waits for the present queue to go idle after every frame.
	// The context owns a single pair of frame semaphores, so FramesInFlight must be 1.
	FramePacing    bool
	FramesInFlight int

	// ClearColor is an RGBA value with every channel in [0, 1].
	ClearColor mgl32.Vec4
}

func DefaultConfig() Config {
	return Config{
		ApplicationName:     "VulkanLearning",
		UseValidationLayer:  true,
		RenderingResolution: Resolution{Width: 1024, Height: 768},
		FramePacing:         true,
		FramesInFlight:      1,
		ClearColor:          mgl32.Vec4{0, 0, 0, 1},
	}
}

func (c Config) Validate() error {
	if c.RenderingResolution.Width == 0 || c.RenderingResolution.Height == 0 {
		return errors.Newf("rendering resolution %dx%d has a zero dimension",
			c.RenderingResolution.Width, c.RenderingResolution.Height)
	}
	if c.FramePacing && c.FramesInFlight != 1 {
		return errors.Newf("frame pacing supports exactly one frame in flight, got %d", c.FramesInFlight)
	}
	for i, channel := range c.ClearColor {
		if mgl32.Clamp(channel, 0, 1) != channel {
			return errors.Newf("clear color channel %d is %g, outside [0, 1]", i, channel)
		}
	}
	return nil
}
