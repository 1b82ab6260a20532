package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/renderqueue/render"
)

// Window is an SDL window that Vulkan surfaces can be created for.
type Window struct {
	window *sdl.Window
}

// NewWindow opens a Vulkan capable SDL window.
func NewWindow(title string, width, height int32) (*Window, error) {
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, errors.Wrap(err, "sdl: create window")
	}
	return &Window{window: window}, nil
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) DrawableSize() (width, height int) {
	wInt, hInt := w.window.VulkanGetDrawableSize()
	return int(wInt), int(hInt)
}

func (w *Window) SDL() *sdl.Window {
	return w.window
}

func (w *Window) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
}

var _ render.Window = (*Window)(nil)
