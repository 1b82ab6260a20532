package render

import "github.com/cockroachdb/errors"

// RequiredDeviceExtensions must all be supported by a physical device to be selected.
var RequiredDeviceExtensions = []string{"VK_KHR_swapchain"}

const portabilitySubsetExtension = "VK_KHR_portability_subset"

// PhysicalDeviceInfo is a read-only snapshot of one candidate physical device.
type PhysicalDeviceInfo struct {
	Device        Handle
	Properties    DeviceProperties
	Features      DeviceFeatures
	QueueFamilies []QueueFamilyProperties

	// Extensions is nil when the driver failed to list them.
	Extensions map[string]struct{}
}

func queryPhysicalDevice(instance Instance, device Handle) (*PhysicalDeviceInfo, error) {
	properties, err := instance.PhysicalDeviceProperties(device)
	if err != nil {
		return nil, errors.Wrap(err, "physical device properties")
	}

	info := &PhysicalDeviceInfo{
		Device:        device,
		Properties:    properties,
		Features:      instance.PhysicalDeviceFeatures(device),
		QueueFamilies: instance.QueueFamilyProperties(device),
	}

	extensions, _, err := instance.DeviceExtensions(device)
	if err == nil {
		info.Extensions = make(map[string]struct{}, len(extensions))
		for _, name := range extensions {
			info.Extensions[name] = struct{}{}
		}
	}

	return info, nil
}

func (i *PhysicalDeviceInfo) HasExtension(name string) bool {
	_, ok := i.Extensions[name]
	return ok
}

// checkType rejects everything but discrete GPUs.
func (i *PhysicalDeviceInfo) checkType() (string, bool) {
	if i.Properties.Type != DeviceTypeDiscreteGPU {
		return "device is not GPU", false
	}
	return "", true
}

func (i *PhysicalDeviceInfo) checkFeatures() (string, bool) {
	if !i.Features.GeometryShader {
		return "missing geometry shaders support", false
	}
	return "", true
}

func (i *PhysicalDeviceInfo) checkExtensions() (string, bool) {
	if i.Extensions == nil {
		return "couldn't get extensions", false
	}
	for _, name := range RequiredDeviceExtensions {
		if !i.HasExtension(name) {
			return "missing required device extensions", false
		}
	}
	return "", true
}

func checkSwapChainSupport(support SwapChainSupport) (string, bool) {
	if !support.Adequate() {
		return "swap chain is not supported", false
	}
	return "", true
}
