package render

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	debugUtilsExtension             = "VK_EXT_debug_utils"
	portabilityEnumerationExtension = "VK_KHR_portability_enumeration"
)

// stage carries the resource bundle between build stages. Advancing moves the bundle
// into the next stage and leaves the receiver consumed. A failed advance leaves the
// bundle in place, holding only the handles of completed stages, so Abort can release them.
type stage struct {
	res *resources
}

func (s *stage) resources() (*resources, error) {
	if s.res == nil {
		return nil, ErrStageConsumed
	}
	return s.res, nil
}

func (s *stage) advance() stage {
	res := s.res
	s.res = nil
	return stage{res: res}
}

// Abort releases the handles created by completed stages. Only needed when a build
// is abandoned after a failed stage; Create does it automatically.
func (s *stage) Abort() {
	if s.res == nil {
		return
	}
	s.res.release()
	s.res = nil
}

type (
	ConnectionStage     struct{ stage }
	InstanceStage       struct{ stage }
	SurfaceStage        struct{ stage }
	PhysicalDeviceStage struct{ stage }
	LogicalDeviceStage  struct{ stage }
	SwapChainStage      struct{ stage }
	PipelineStage       struct{ stage }
	FramebufferStage    struct{ stage }
	CommandStage        struct{ stage }
	SyncStage           struct{ stage }
	EndStage            struct{ stage }
)

// NewBuilder starts a build chain. Each stage exposes the single operation that
// advances it; the chain ends with EndStage.Build.
func NewBuilder(cfg Config, loader Loader, window Window, shaders ShaderSet, log logrus.FieldLogger) *ConnectionStage {
	return &ConnectionStage{stage{res: &resources{
		cfg:     cfg,
		log:     log,
		loader:  loader,
		window:  window,
		shaders: shaders,
	}}}
}

// OpenConnection loads the driver library and resolves the global entry points.
func (s *ConnectionStage) OpenConnection() (*InstanceStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	if err := res.loader.LoadLibrary(); err != nil {
		return nil, newError(LoadLibraryError, Success, err)
	}

	entry, err := res.loader.CreateEntry()
	if err != nil {
		return nil, newError(CreateEntryError, Success, err)
	}
	res.entry = entry

	return &InstanceStage{s.advance()}, nil
}

// CreateInstance creates the API instance with the window's extensions, and the
// validation layer plus a debug messenger when configured.
func (s *InstanceStage) CreateInstance() (*SurfaceStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	info := InstanceCreateInfo{
		ApplicationName: res.cfg.ApplicationName,
		EngineName:      "No Engine",
	}

	available, code, err := res.entry.AvailableExtensions()
	if err != nil {
		return nil, newError(CreateInstanceError, code, err)
	}
	extensions := toSet(available)

	for _, ext := range res.window.RequiredInstanceExtensions() {
		if _, ok := extensions[ext]; !ok {
			return nil, supportError("missing window instance extension "+ext, nil)
		}
		info.EnabledExtensions = append(info.EnabledExtensions, ext)
	}

	if _, ok := extensions[portabilityEnumerationExtension]; ok {
		info.EnabledExtensions = append(info.EnabledExtensions, portabilityEnumerationExtension)
		info.EnumeratePortability = true
	}

	if res.cfg.UseValidationLayer {
		layers, code, err := res.entry.AvailableLayers()
		if err != nil {
			return nil, newError(CreateInstanceError, code, err)
		}
		if _, ok := toSet(layers)[ValidationLayer]; !ok {
			return nil, supportError("validation layer "+ValidationLayer+" not available, install the Vulkan SDK", nil)
		}
		if _, ok := extensions[debugUtilsExtension]; !ok {
			return nil, supportError("missing instance extension "+debugUtilsExtension, nil)
		}

		info.EnabledLayers = append(info.EnabledLayers, ValidationLayer)
		info.EnabledExtensions = append(info.EnabledExtensions, debugUtilsExtension)
		info.DebugCallback = res.debugMessage
	}

	instance, code, err := res.entry.CreateInstance(info)
	if err != nil {
		return nil, newError(CreateInstanceError, code, err)
	}

	if res.cfg.UseValidationLayer {
		messenger, code, err := instance.CreateDebugMessenger(res.debugMessage)
		if err != nil {
			instance.Destroy()
			return nil, newError(CreateInstanceError, code, errors.Wrap(err, "debug messenger"))
		}
		res.messenger = messenger
	}
	res.instance = instance

	res.log.WithFields(logrus.Fields{
		"extensions": info.EnabledExtensions,
		"layers":     info.EnabledLayers,
	}).Debug("Instance created")

	return &SurfaceStage{s.advance()}, nil
}

// CreateSurface binds the instance to the window.
func (s *SurfaceStage) CreateSurface() (*PhysicalDeviceStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	surface, err := res.instance.CreateSurface(res.window)
	if err != nil {
		return nil, supportError("couldn't create a surface for the window", err)
	}
	res.surface = surface

	return &PhysicalDeviceStage{s.advance()}, nil
}

// ChoosePhysicalDevice picks the first suitable physical device.
func (s *PhysicalDeviceStage) ChoosePhysicalDevice() (*LogicalDeviceStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	selection, err := SelectPhysicalDevice(res.instance, res.surface, res.log)
	if err != nil {
		return nil, err
	}
	res.physicalDevice = selection.Info
	res.queueFamilies = selection.QueueFamilies
	res.swapChainSupport = selection.SwapChainSupport

	return &LogicalDeviceStage{s.advance()}, nil
}

// CreateLogicalDevice creates the device with one queue per unique queue family.
func (s *LogicalDeviceStage) CreateLogicalDevice() (*SwapChainStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	var info DeviceCreateInfo
	for _, family := range res.queueFamilies.UniqueIndices() {
		info.QueueCreateInfos = append(info.QueueCreateInfos, DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}

	if res.cfg.UseValidationLayer {
		info.EnabledLayers = []string{ValidationLayer}
	}

	info.EnabledExtensions = append(info.EnabledExtensions, RequiredDeviceExtensions...)
	if res.physicalDevice.HasExtension(portabilitySubsetExtension) {
		info.EnabledExtensions = append(info.EnabledExtensions, portabilitySubsetExtension)
	}

	device, code, err := res.instance.CreateDevice(res.physicalDevice.Device, info)
	if err != nil {
		return nil, newError(CreateLogicalDeviceError, code, err)
	}
	res.device = device
	res.graphicsQueue = device.Queue(res.queueFamilies.Graphics)
	res.presentQueue = device.Queue(res.queueFamilies.Present)

	return &SwapChainStage{s.advance()}, nil
}

// CreateSwapChain negotiates the swap chain settings, creates the swap chain and one
// image view per swap chain image.
func (s *SwapChainStage) CreateSwapChain() (*PipelineStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	settings := res.swapChainSupport.Negotiate(res.cfg.RenderingResolution)

	info := SwapchainCreateInfo{
		Surface:         res.surface,
		MinImageCount:   settings.ImageCount,
		ImageFormat:     settings.Format.Format,
		ImageColorSpace: settings.Format.ColorSpace,
		ImageExtent:     settings.Extent,
		SharingMode:     SharingModeExclusive,
		PresentMode:     settings.PresentMode,
		Clipped:         true,
	}
	if res.queueFamilies.Graphics != res.queueFamilies.Present {
		info.SharingMode = SharingModeConcurrent
		info.QueueFamilyIndices = []int{res.queueFamilies.Graphics, res.queueFamilies.Present}
	}

	swapchain, code, err := res.device.CreateSwapchain(info)
	if err != nil {
		return nil, newError(CreateSwapChainError, code, err)
	}

	images, code, err := res.device.SwapchainImages(swapchain)
	if err != nil {
		res.device.DestroySwapchain(swapchain)
		return nil, newError(CreateSwapChainError, code, err)
	}

	imageViews := make([]Handle, 0, len(images))
	for _, image := range images {
		view, code, err := res.device.CreateImageView(image, settings.Format.Format)
		if err != nil {
			for _, created := range imageViews {
				res.device.DestroyImageView(created)
			}
			res.device.DestroySwapchain(swapchain)
			return nil, newError(CreateSwapChainError, code, err)
		}
		imageViews = append(imageViews, view)
	}

	res.swapChain = SwapChain{
		Handle:      swapchain,
		Format:      settings.Format,
		PresentMode: settings.PresentMode,
		Extent:      settings.Extent,
		Images:      images,
		ImageViews:  imageViews,
	}

	res.log.WithFields(logrus.Fields{
		"format":      settings.Format.Format,
		"presentMode": settings.PresentMode,
		"width":       settings.Extent.Width,
		"height":      settings.Extent.Height,
		"images":      len(images),
	}).Debug("Swap chain created")

	return &PipelineStage{s.advance()}, nil
}

// CreateFramebuffers creates one framebuffer per swap chain image view.
func (s *FramebufferStage) CreateFramebuffers() (*CommandStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	framebuffers := make([]Handle, 0, len(res.swapChain.ImageViews))
	for _, imageView := range res.swapChain.ImageViews {
		framebuffer, code, err := res.device.CreateFramebuffer(FramebufferCreateInfo{
			RenderPass:  res.renderPass,
			Attachments: []Handle{imageView},
			Width:       res.swapChain.Extent.Width,
			Height:      res.swapChain.Extent.Height,
			Layers:      1,
		})
		if err != nil {
			for _, created := range framebuffers {
				res.device.DestroyFramebuffer(created)
			}
			return nil, newError(CreateFrameBufferError, code, err)
		}
		framebuffers = append(framebuffers, framebuffer)
	}
	res.framebuffers = framebuffers

	return &CommandStage{s.advance()}, nil
}

// CreateCommandBuffers creates the command pool on the graphics family and records one
// primary command buffer per framebuffer drawing the triangle.
func (s *CommandStage) CreateCommandBuffers() (*SyncStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	pool, code, err := res.device.CreateCommandPool(res.queueFamilies.Graphics)
	if err != nil {
		return nil, newError(CreateCommandPoolError, code, err)
	}

	buffers, code, err := res.device.AllocateCommandBuffers(pool, len(res.framebuffers))
	if err != nil {
		res.device.DestroyCommandPool(pool)
		return nil, newError(CreateCommandBufferError, code, err)
	}

	for idx, buffer := range buffers {
		code, err := recordDraw(res, buffer, res.framebuffers[idx])
		if err != nil {
			res.device.DestroyCommandPool(pool)
			return nil, newError(CreateCommandBufferError, code, err)
		}
	}

	res.commandPool = pool
	res.commandBuffers = buffers

	return &SyncStage{s.advance()}, nil
}

func recordDraw(res *resources, buffer Handle, framebuffer Handle) (Code, error) {
	code, err := res.device.BeginCommandBuffer(buffer)
	if err != nil {
		return code, err
	}

	err = res.device.CmdBeginRenderPass(buffer, RenderPassBeginInfo{
		RenderPass:  res.renderPass,
		Framebuffer: framebuffer,
		Extent:      res.swapChain.Extent,
		ClearColor:  res.cfg.ClearColor,
	})
	if err != nil {
		return Success, err
	}

	res.device.CmdBindPipeline(buffer, res.pipeline)
	res.device.CmdDraw(buffer, 3, 1, 0, 0)
	res.device.CmdEndRenderPass(buffer)

	return res.device.EndCommandBuffer(buffer)
}

// CreateSyncObjects creates the semaphores ordering acquire, render and present, and
// the in-flight fences when frame pacing is enabled.
func (s *SyncStage) CreateSyncObjects() (*EndStage, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	var sync SyncObjects
	fail := func(code Code, err error) error {
		for _, fence := range sync.InFlight {
			res.device.DestroyFence(fence)
		}
		if sync.RenderFinished != NullHandle {
			res.device.DestroySemaphore(sync.RenderFinished)
		}
		if sync.ImageAvailable != NullHandle {
			res.device.DestroySemaphore(sync.ImageAvailable)
		}
		return newError(CreateSyncObjectsError, code, err)
	}

	var code Code
	sync.ImageAvailable, code, err = res.device.CreateSemaphore()
	if err != nil {
		return nil, fail(code, err)
	}

	sync.RenderFinished, code, err = res.device.CreateSemaphore()
	if err != nil {
		return nil, fail(code, err)
	}

	if res.cfg.FramePacing {
		for i := 0; i < res.cfg.FramesInFlight; i++ {
			fence, code, err := res.device.CreateFence(true)
			if err != nil {
				return nil, fail(code, err)
			}
			sync.InFlight = append(sync.InFlight, fence)
		}
	}
	res.sync = sync

	return &EndStage{s.advance()}, nil
}

// Build hands every handle over to the rendering context.
func (s *EndStage) Build() (*Context, error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}
	s.advance()

	return &Context{res: res}, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
