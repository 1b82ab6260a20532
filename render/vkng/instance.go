package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
	"github.com/vkngwrapper/renderqueue/render"
)

type entry struct {
	driver core1_0.GlobalDriver
}

func (e *entry) AvailableLayers() ([]string, render.Code, error) {
	layers, res, err := e.driver.AvailableLayers()
	if err != nil {
		return nil, render.Code(res), err
	}
	return names(layers), render.Code(res), nil
}

func (e *entry) AvailableExtensions() ([]string, render.Code, error) {
	extensions, res, err := e.driver.AvailableExtensions()
	if err != nil {
		return nil, render.Code(res), err
	}
	return names(extensions), render.Code(res), nil
}

func (e *entry) CreateInstance(info render.InstanceCreateInfo) (render.Instance, render.Code, error) {
	options := core1_0.InstanceCreateInfo{
		ApplicationName:       info.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            info.EngineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledLayerNames:     info.EnabledLayers,
		EnabledExtensionNames: info.EnabledExtensions,
	}
	if info.EnumeratePortability {
		options.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}
	if info.DebugCallback != nil {
		// Covers messages emitted while the instance itself is created or destroyed.
		options.Next = debugMessengerInfo(info.DebugCallback)
	}

	driver, res, err := e.driver.CreateInstance(nil, options)
	if err != nil {
		return nil, render.Code(res), err
	}

	source := &handleSource{}
	return &instance{
		driver:          driver,
		surfaceExt:      khr_surface.CreateExtensionDriverFromCoreDriver(driver),
		source:          source,
		physicalDevices: newRegistry[core1_0.PhysicalDevice](source),
		surfaces:        newRegistry[khr_surface.Surface](source),
		messengers:      newRegistry[ext_debug_utils.DebugUtilsMessenger](source),
	}, render.Code(res), nil
}

func debugMessengerInfo(callback render.DebugCallback) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			callback(toSeverity(severity), msgType.String(), data.Message)
			return false
		},
	}
}

func toSeverity(severity ext_debug_utils.DebugUtilsMessageSeverityFlags) render.Severity {
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		return render.SeverityError
	case severity&ext_debug_utils.SeverityWarning != 0:
		return render.SeverityWarning
	case severity&ext_debug_utils.SeverityInfo != 0:
		return render.SeverityInfo
	}
	return render.SeverityVerbose
}

type instance struct {
	driver     core1_0.CoreInstanceDriver
	surfaceExt khr_surface.ExtensionDriver
	debugExt   ext_debug_utils.ExtensionDriver

	source          *handleSource
	physicalDevices registry[core1_0.PhysicalDevice]
	surfaces        registry[khr_surface.Surface]
	messengers      registry[ext_debug_utils.DebugUtilsMessenger]
}

func (i *instance) EnumeratePhysicalDevices() ([]render.Handle, render.Code, error) {
	devices, res, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, render.Code(res), err
	}
	return i.physicalDevices.addAll(devices), render.Code(res), nil
}

func (i *instance) PhysicalDeviceProperties(physicalDevice render.Handle) (render.DeviceProperties, error) {
	properties, err := i.driver.GetPhysicalDeviceProperties(i.physicalDevices.get(physicalDevice))
	if err != nil {
		return render.DeviceProperties{}, err
	}
	return render.DeviceProperties{
		Name:              properties.DriverName,
		Type:              render.DeviceType(properties.DriverType),
		APIVersion:        uint32(properties.APIVersion),
		DriverVersion:     uint32(properties.DriverVersion),
		VendorID:          properties.VendorID,
		DeviceID:          properties.DeviceID,
		PipelineCacheUUID: properties.PipelineCacheUUID,
	}, nil
}

func (i *instance) PhysicalDeviceFeatures(physicalDevice render.Handle) render.DeviceFeatures {
	features := i.driver.GetPhysicalDeviceFeatures(i.physicalDevices.get(physicalDevice))
	return render.DeviceFeatures{
		GeometryShader:    features.GeometryShader,
		SamplerAnisotropy: features.SamplerAnisotropy,
	}
}

func (i *instance) QueueFamilyProperties(physicalDevice render.Handle) []render.QueueFamilyProperties {
	families := i.driver.GetPhysicalDeviceQueueFamilyProperties(i.physicalDevices.get(physicalDevice))
	out := make([]render.QueueFamilyProperties, len(families))
	for idx, family := range families {
		out[idx] = render.QueueFamilyProperties{
			Flags: render.QueueFlags(family.QueueFlags),
			Count: family.QueueCount,
		}
	}
	return out
}

func (i *instance) DeviceExtensions(physicalDevice render.Handle) ([]string, render.Code, error) {
	extensions, res, err := i.driver.EnumerateDeviceExtensionProperties(i.physicalDevices.get(physicalDevice))
	if err != nil {
		return nil, render.Code(res), err
	}
	return names(extensions), render.Code(res), nil
}

func (i *instance) CreateDebugMessenger(callback render.DebugCallback) (render.Handle, render.Code, error) {
	if i.debugExt == nil {
		i.debugExt = ext_debug_utils.CreateExtensionDriverFromCoreDriver(i.driver)
	}

	messenger, res, err := i.debugExt.CreateDebugUtilsMessenger(nil, debugMessengerInfo(callback))
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return i.messengers.add(messenger), render.Code(res), nil
}

func (i *instance) DestroyDebugMessenger(messenger render.Handle) {
	if object, ok := i.messengers.remove(messenger); ok {
		i.debugExt.DestroyDebugUtilsMessenger(object, nil)
	}
}

func (i *instance) CreateSurface(window render.Window) (render.Handle, error) {
	sdlWindow, ok := window.(*Window)
	if !ok {
		return render.NullHandle, render.ErrUnsupportedWindow
	}

	surface, err := vkng_sdl2.CreateSurface(i.driver.Instance(), i.surfaceExt, sdlWindow.window)
	if err != nil {
		return render.NullHandle, errors.Wrap(err, "sdl: create surface")
	}
	return i.surfaces.add(surface), nil
}

func (i *instance) DestroySurface(surface render.Handle) {
	if object, ok := i.surfaces.remove(surface); ok {
		i.surfaceExt.DestroySurface(object, nil)
	}
}

func (i *instance) SurfaceSupport(physicalDevice render.Handle, queueFamily int, surface render.Handle) (bool, render.Code, error) {
	supported, res, err := i.surfaceExt.GetPhysicalDeviceSurfaceSupport(i.surfaces.get(surface), i.physicalDevices.get(physicalDevice), queueFamily)
	return supported, render.Code(res), err
}

func (i *instance) surfaceCapabilities(physicalDevice core1_0.PhysicalDevice, surface khr_surface.Surface) (*khr_surface.SurfaceCapabilities, common.VkResult, error) {
	return i.surfaceExt.GetPhysicalDeviceSurfaceCapabilities(surface, physicalDevice)
}

func (i *instance) SurfaceCapabilities(physicalDevice render.Handle, surface render.Handle) (render.SurfaceCapabilities, render.Code, error) {
	capabilities, res, err := i.surfaceCapabilities(i.physicalDevices.get(physicalDevice), i.surfaces.get(surface))
	if err != nil {
		return render.SurfaceCapabilities{}, render.Code(res), err
	}
	return render.SurfaceCapabilities{
		MinImageCount:  capabilities.MinImageCount,
		MaxImageCount:  capabilities.MaxImageCount,
		CurrentExtent:  fromExtent(capabilities.CurrentExtent),
		MinImageExtent: fromExtent(capabilities.MinImageExtent),
		MaxImageExtent: fromExtent(capabilities.MaxImageExtent),
	}, render.Code(res), nil
}

func (i *instance) SurfaceFormats(physicalDevice render.Handle, surface render.Handle) ([]render.SurfaceFormat, render.Code, error) {
	formats, res, err := i.surfaceExt.GetPhysicalDeviceSurfaceFormats(i.surfaces.get(surface), i.physicalDevices.get(physicalDevice))
	if err != nil {
		return nil, render.Code(res), err
	}
	out := make([]render.SurfaceFormat, len(formats))
	for idx, format := range formats {
		out[idx] = render.SurfaceFormat{
			Format:     render.Format(format.Format),
			ColorSpace: render.ColorSpace(format.ColorSpace),
		}
	}
	return out, render.Code(res), nil
}

func (i *instance) SurfacePresentModes(physicalDevice render.Handle, surface render.Handle) ([]render.PresentMode, render.Code, error) {
	modes, res, err := i.surfaceExt.GetPhysicalDeviceSurfacePresentModes(i.surfaces.get(surface), i.physicalDevices.get(physicalDevice))
	if err != nil {
		return nil, render.Code(res), err
	}
	out := make([]render.PresentMode, len(modes))
	for idx, mode := range modes {
		out[idx] = render.PresentMode(mode)
	}
	return out, render.Code(res), nil
}

func (i *instance) CreateDevice(physicalDevice render.Handle, info render.DeviceCreateInfo) (render.Device, render.Code, error) {
	queues := make([]core1_0.DeviceQueueCreateInfo, len(info.QueueCreateInfos))
	for idx, queue := range info.QueueCreateInfos {
		queues[idx] = core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.QueueFamilyIndex,
			QueuePriorities:  queue.QueuePriorities,
		}
	}

	pd := i.physicalDevices.get(physicalDevice)
	driver, res, err := i.driver.CreateDevice(pd, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queues,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			GeometryShader:    info.EnabledFeatures.GeometryShader,
			SamplerAnisotropy: info.EnabledFeatures.SamplerAnisotropy,
		},
		EnabledLayerNames:     info.EnabledLayers,
		EnabledExtensionNames: info.EnabledExtensions,
	})
	if err != nil {
		return nil, render.Code(res), err
	}

	return newDevice(i, pd, driver), render.Code(res), nil
}

func (i *instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

func fromExtent(extent core1_0.Extent2D) render.Extent2D {
	return render.Extent2D{Width: extent.Width, Height: extent.Height}
}

func toExtent(extent render.Extent2D) core1_0.Extent2D {
	return core1_0.Extent2D{Width: extent.Width, Height: extent.Height}
}

var (
	_ render.Entry    = (*entry)(nil)
	_ render.Instance = (*instance)(nil)
)
