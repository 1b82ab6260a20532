package render

import "github.com/cockroachdb/errors"

// PreferredSurfaceFormat is chosen whenever the surface offers it.
var PreferredSurfaceFormat = SurfaceFormat{Format: FormatB8G8R8A8SRGB, ColorSpace: ColorSpaceSRGBNonlinear}

// SwapChainSupport is what a physical device can present to the bound surface.
type SwapChainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

func querySwapChainSupport(instance Instance, physicalDevice Handle, surface Handle) (SwapChainSupport, error) {
	var support SwapChainSupport
	var err error

	support.Capabilities, _, err = instance.SurfaceCapabilities(physicalDevice, surface)
	if err != nil {
		return support, errors.Wrap(err, "surface capabilities")
	}

	support.Formats, _, err = instance.SurfaceFormats(physicalDevice, surface)
	if err != nil {
		return support, errors.Wrap(err, "surface formats")
	}

	support.PresentModes, _, err = instance.SurfacePresentModes(physicalDevice, surface)
	if err != nil {
		return support, errors.Wrap(err, "surface present modes")
	}

	return support, nil
}

// Adequate reports whether a swap chain can be built at all.
func (s SwapChainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// ChooseSurfaceFormat returns the preferred format if available, the first one otherwise.
// formats must not be empty.
func ChooseSurfaceFormat(formats []SurfaceFormat) SurfaceFormat {
	for _, format := range formats {
		if format == PreferredSurfaceFormat {
			return format
		}
	}

	return formats[0]
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every driver supports.
func ChoosePresentMode(modes []PresentMode) PresentMode {
	for _, mode := range modes {
		if mode == PresentModeMailbox {
			return mode
		}
	}

	return PresentModeFIFO
}

// ChooseExtent clamps the requested resolution into the surface's extent bounds.
func ChooseExtent(capabilities SurfaceCapabilities, requested Resolution) Extent2D {
	return Extent2D{
		Width:  clamp(int(requested.Width), capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(int(requested.Height), capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum. A maximum of zero means unbounded.
func ChooseImageCount(capabilities SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && imageCount > capabilities.MaxImageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func clamp(value, lo, hi int) int {
	if value < lo {
		value = lo
	}
	if value > hi {
		value = hi
	}
	return value
}

// SwapChainSettings is the negotiated configuration a swap chain is created with.
type SwapChainSettings struct {
	Format      SurfaceFormat
	PresentMode PresentMode
	Extent      Extent2D
	ImageCount  int
}

// Negotiate picks concrete swap chain settings for the requested resolution.
func (s SwapChainSupport) Negotiate(requested Resolution) SwapChainSettings {
	return SwapChainSettings{
		Format:      ChooseSurfaceFormat(s.Formats),
		PresentMode: ChoosePresentMode(s.PresentModes),
		Extent:      ChooseExtent(s.Capabilities, requested),
		ImageCount:  ChooseImageCount(s.Capabilities),
	}
}
