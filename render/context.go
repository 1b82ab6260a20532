package render

import "github.com/sirupsen/logrus"

// SwapChain is the presentable image set bound to the surface.
type SwapChain struct {
	Handle      Handle
	Format      SurfaceFormat
	PresentMode PresentMode
	Extent      Extent2D

	// Images are owned by the swap chain and only borrowed here.
	Images     []Handle
	ImageViews []Handle
}

type SyncObjects struct {
	ImageAvailable Handle
	RenderFinished Handle

	// InFlight holds one signaled fence per frame in flight when frame pacing is enabled.
	InFlight []Handle
}

// resources is the ownership bundle carried through the build stages. Each stage fills
// in the handles it creates; release destroys whatever is present in reverse order.
type resources struct {
	cfg     Config
	log     logrus.FieldLogger
	loader  Loader
	window  Window
	shaders ShaderSet

	entry     Entry
	instance  Instance
	messenger Handle
	surface   Handle

	physicalDevice   *PhysicalDeviceInfo
	queueFamilies    QueueFamilyIndices
	swapChainSupport SwapChainSupport

	device        Device
	graphicsQueue Handle
	presentQueue  Handle

	swapChain      SwapChain
	renderPass     Handle
	pipelineLayout Handle
	pipeline       Handle
	framebuffers   []Handle
	commandPool    Handle
	commandBuffers []Handle
	sync           SyncObjects
}

func (r *resources) debugMessage(severity Severity, messageType string, message string) {
	entry := r.log.WithField("type", messageType)
	switch severity {
	case SeverityError:
		entry.Error(message)
	case SeverityWarning:
		entry.Warn(message)
	case SeverityInfo:
		entry.Info(message)
	default:
		entry.Debug(message)
	}
}

func (r *resources) release() {
	if r.device != nil {
		for _, fence := range r.sync.InFlight {
			r.device.DestroyFence(fence)
		}
		if r.sync.RenderFinished != NullHandle {
			r.device.DestroySemaphore(r.sync.RenderFinished)
		}
		if r.sync.ImageAvailable != NullHandle {
			r.device.DestroySemaphore(r.sync.ImageAvailable)
		}
		r.sync = SyncObjects{}

		if r.commandPool != NullHandle {
			r.device.DestroyCommandPool(r.commandPool)
			r.commandPool = NullHandle
			r.commandBuffers = nil
		}

		for _, framebuffer := range r.framebuffers {
			r.device.DestroyFramebuffer(framebuffer)
		}
		r.framebuffers = nil

		if r.pipeline != NullHandle {
			r.device.DestroyPipeline(r.pipeline)
			r.pipeline = NullHandle
		}

		if r.pipelineLayout != NullHandle {
			r.device.DestroyPipelineLayout(r.pipelineLayout)
			r.pipelineLayout = NullHandle
		}

		if r.renderPass != NullHandle {
			r.device.DestroyRenderPass(r.renderPass)
			r.renderPass = NullHandle
		}

		for _, imageView := range r.swapChain.ImageViews {
			r.device.DestroyImageView(imageView)
		}

		if r.swapChain.Handle != NullHandle {
			r.device.DestroySwapchain(r.swapChain.Handle)
		}
		r.swapChain = SwapChain{}
	}

	if r.instance != nil {
		if r.messenger != NullHandle {
			r.instance.DestroyDebugMessenger(r.messenger)
			r.messenger = NullHandle
		}

		if r.surface != NullHandle {
			r.instance.DestroySurface(r.surface)
			r.surface = NullHandle
		}
	}

	if r.device != nil {
		r.device.Destroy()
		r.device = nil
	}

	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
	r.entry = nil
}

// Context is the fully built rendering context. It exclusively owns every native handle
// created while building it.
type Context struct {
	res *resources

	currentFrame int
}

// Destroy releases every native handle in reverse creation order. Calling it again
// does nothing.
func (c *Context) Destroy() {
	if c.res == nil {
		return
	}
	c.res.release()
	c.res.log.Debug("Rendering context destroyed")
	c.res = nil
}

func (c *Context) Config() Config { return c.res.cfg }
func (c *Context) PhysicalDevice() *PhysicalDeviceInfo { return c.res.physicalDevice }
func (c *Context) QueueFamilies() QueueFamilyIndices { return c.res.queueFamilies }
func (c *Context) Device() Device { return c.res.device }
func (c *Context) GraphicsQueue() Handle { return c.res.graphicsQueue }
func (c *Context) PresentQueue() Handle { return c.res.presentQueue }
func (c *Context) SwapChain() SwapChain { return c.res.swapChain }
func (c *Context) RenderPass() Handle { return c.res.renderPass }
func (c *Context) Pipeline() Handle { return c.res.pipeline }
func (c *Context) Framebuffers() []Handle { return c.res.framebuffers }
func (c *Context) CommandBuffers() []Handle { return c.res.commandBuffers }
func (c *Context) SyncObjects() SyncObjects { return c.res.sync }
func (c *Context) HasDebugMessenger() bool { return c.res.messenger != NullHandle }
