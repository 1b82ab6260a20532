package render

// The interfaces in this file are the boundary between the build pipeline and the native
// graphics API. Methods that can fail natively return the raw status code alongside the
// error, matching the (value, VkResult, error) shape of the underlying drivers.

// Severity of a validation layer message.
type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// DebugCallback receives messages from the validation layer.
type DebugCallback func(severity Severity, messageType string, message string)

// Window is the external window collaborator a presentation surface is created for.
type Window interface {
	// RequiredInstanceExtensions lists the instance extensions the window system
	// needs to create a surface
	RequiredInstanceExtensions() []string

	// DrawableSize is the current size of the window in pixels
	DrawableSize() (width, height int)
}

// Loader opens the native API.
type Loader interface {
	// LoadLibrary loads the shared driver loader
	LoadLibrary() error

	// CreateEntry resolves the global entry points from the loaded library
	CreateEntry() (Entry, error)
}

// Entry exposes the global, pre-instance level of the native API.
type Entry interface {
	AvailableLayers() ([]string, Code, error)
	AvailableExtensions() ([]string, Code, error)
	CreateInstance(info InstanceCreateInfo) (Instance, Code, error)
}

// Instance is an owned native API instance.
type Instance interface {
	EnumeratePhysicalDevices() ([]Handle, Code, error)
	PhysicalDeviceProperties(physicalDevice Handle) (DeviceProperties, error)
	PhysicalDeviceFeatures(physicalDevice Handle) DeviceFeatures
	QueueFamilyProperties(physicalDevice Handle) []QueueFamilyProperties
	DeviceExtensions(physicalDevice Handle) ([]string, Code, error)

	CreateDebugMessenger(callback DebugCallback) (Handle, Code, error)
	DestroyDebugMessenger(messenger Handle)

	// CreateSurface binds the instance to the window. It returns ErrUnsupportedWindow
	// when the window system cannot be used by this instance.
	CreateSurface(window Window) (Handle, error)
	DestroySurface(surface Handle)

	SurfaceSupport(physicalDevice Handle, queueFamily int, surface Handle) (bool, Code, error)
	SurfaceCapabilities(physicalDevice Handle, surface Handle) (SurfaceCapabilities, Code, error)
	SurfaceFormats(physicalDevice Handle, surface Handle) ([]SurfaceFormat, Code, error)
	SurfacePresentModes(physicalDevice Handle, surface Handle) ([]PresentMode, Code, error)

	CreateDevice(physicalDevice Handle, info DeviceCreateInfo) (Device, Code, error)

	Destroy()
}

// Device is an owned logical device.
type Device interface {
	Queue(queueFamily int) Handle

	CreateSwapchain(info SwapchainCreateInfo) (Handle, Code, error)
	SwapchainImages(swapchain Handle) ([]Handle, Code, error)
	DestroySwapchain(swapchain Handle)

	CreateImageView(image Handle, format Format) (Handle, Code, error)
	DestroyImageView(imageView Handle)

	CreateRenderPass(info RenderPassCreateInfo) (Handle, Code, error)
	DestroyRenderPass(renderPass Handle)

	CreateShaderModule(code []uint32) (Handle, Code, error)
	DestroyShaderModule(module Handle)

	CreatePipelineLayout() (Handle, Code, error)
	DestroyPipelineLayout(layout Handle)

	CreateGraphicsPipeline(info GraphicsPipelineCreateInfo) (Handle, Code, error)
	DestroyPipeline(pipeline Handle)

	CreateFramebuffer(info FramebufferCreateInfo) (Handle, Code, error)
	DestroyFramebuffer(framebuffer Handle)

	CreateCommandPool(queueFamily int) (Handle, Code, error)
	DestroyCommandPool(pool Handle)
	// AllocateCommandBuffers allocates primary command buffers. They are freed
	// together with their pool.
	AllocateCommandBuffers(pool Handle, count int) ([]Handle, Code, error)

	BeginCommandBuffer(buffer Handle) (Code, error)
	CmdBeginRenderPass(buffer Handle, info RenderPassBeginInfo) error
	CmdBindPipeline(buffer Handle, pipeline Handle)
	CmdDraw(buffer Handle, vertexCount, instanceCount, firstVertex, firstInstance int)
	CmdEndRenderPass(buffer Handle)
	EndCommandBuffer(buffer Handle) (Code, error)

	CreateSemaphore() (Handle, Code, error)
	DestroySemaphore(semaphore Handle)
	CreateFence(signaled bool) (Handle, Code, error)
	DestroyFence(fence Handle)

	WaitForFences(fences ...Handle) (Code, error)
	ResetFences(fences ...Handle) (Code, error)
	AcquireNextImage(swapchain Handle, semaphore Handle) (int, Code, error)
	QueueSubmit(queue Handle, fence Handle, info SubmitInfo) (Code, error)
	QueuePresent(queue Handle, info PresentInfo) (Code, error)
	QueueWaitIdle(queue Handle) (Code, error)
	WaitIdle() (Code, error)

	Destroy()
}
