// Package vkng implements the native API boundary of package render with vkngwrapper,
// using SDL2 to load the Vulkan library and to create presentation surfaces.
package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/renderqueue/render"
)

// Loader loads the Vulkan loader library through SDL. SDL must have been initialized
// with video support before LoadLibrary is called.
type Loader struct {
	// Path of the loader library, empty for the platform default
	Path string
}

func (l *Loader) LoadLibrary() error {
	if err := sdl.VulkanLoadLibrary(l.Path); err != nil {
		return errors.Wrap(err, "sdl: load vulkan library")
	}
	return nil
}

func (l *Loader) CreateEntry() (render.Entry, error) {
	driver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "vkGetInstanceProcAddr")
	}
	return &entry{driver: driver}, nil
}

var _ render.Loader = (*Loader)(nil)
