package render

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// fakeDriver records every create and destroy call of the native API and fails the
// operations named in fail with the given code.
type fakeDriver struct {
	layers     []string
	extensions []string
	devices    []*fakePhysicalDevice
	swapImages int

	fail map[string]Code
	// skip lets the named operation succeed that many times before fail applies.
	skip map[string]int

	calls      []string
	live       map[Handle]string
	nextHandle Handle

	instanceInfo InstanceCreateInfo
	deviceInfo   DeviceCreateInfo
	swapInfo     SwapchainCreateInfo
	pipelineInfo GraphicsPipelineCreateInfo
	beginInfos   []RenderPassBeginInfo
	submits      []SubmitInfo
	presents     []PresentInfo
	debugLog     DebugCallback
}

type fakePhysicalDevice struct {
	properties     DeviceProperties
	features       DeviceFeatures
	families       []QueueFamilyProperties
	presentSupport []bool
	extensions     []string
	capabilities   SurfaceCapabilities
	formats        []SurfaceFormat
	presentModes   []PresentMode

	failExtensions bool
	failSupportAt  int
}

// suitableDevice is a discrete GPU with a combined graphics and present family.
func suitableDevice(name string) *fakePhysicalDevice {
	return &fakePhysicalDevice{
		properties: DeviceProperties{
			Name:              name,
			Type:              DeviceTypeDiscreteGPU,
			PipelineCacheUUID: uuid.New(),
		},
		features:       DeviceFeatures{GeometryShader: true},
		families:       []QueueFamilyProperties{{Flags: QueueGraphics | QueueCompute, Count: 1}},
		presentSupport: []bool{true},
		extensions:     []string{"VK_KHR_swapchain"},
		capabilities: SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  Extent2D{Width: 1024, Height: 768},
			MinImageExtent: Extent2D{Width: 1, Height: 1},
			MaxImageExtent: Extent2D{Width: 4096, Height: 4096},
		},
		formats:       []SurfaceFormat{{Format: FormatB8G8R8A8UNorm}, PreferredSurfaceFormat},
		presentModes:  []PresentMode{PresentModeFIFO, PresentModeMailbox},
		failSupportAt: -1,
	}
}

func newFakeDriver(devices ...*fakePhysicalDevice) *fakeDriver {
	return &fakeDriver{
		layers:     []string{ValidationLayer},
		extensions: []string{"VK_KHR_surface", "VK_KHR_xlib_surface", debugUtilsExtension},
		devices:    devices,
		swapImages: 3,
		fail:       map[string]Code{},
		skip:       map[string]int{},
		live:       map[Handle]string{},
	}
}

func (d *fakeDriver) failing(op string) (Code, error) {
	code, ok := d.fail[op]
	if !ok {
		return Success, nil
	}
	if d.skip[op] > 0 {
		d.skip[op]--
		return Success, nil
	}
	return code, errors.Newf("%s failed", op)
}

func (d *fakeDriver) create(kind string) Handle {
	d.nextHandle++
	d.calls = append(d.calls, "Create"+kind)
	d.live[d.nextHandle] = kind
	return d.nextHandle
}

func (d *fakeDriver) destroy(kind string, handle Handle) {
	d.calls = append(d.calls, "Destroy"+kind)
	delete(d.live, handle)
}

// destroyed lists the destroy calls in order.
func (d *fakeDriver) destroyed() []string {
	var out []string
	for _, call := range d.calls {
		if strings.HasPrefix(call, "Destroy") {
			out = append(out, call)
		}
	}
	return out
}

func (d *fakeDriver) count(call string) int {
	n := 0
	for _, c := range d.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (d *fakeDriver) physicalDevice(handle Handle) *fakePhysicalDevice {
	return d.devices[handle-1]
}

type fakeWindow struct {
	extensions []string
}

func (w fakeWindow) RequiredInstanceExtensions() []string { return w.extensions }
func (w fakeWindow) DrawableSize() (int, int) { return 1024, 768 }

func newFakeWindow() fakeWindow {
	return fakeWindow{extensions: []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}}
}

type fakeLoader struct{ d *fakeDriver }

func (l fakeLoader) LoadLibrary() error {
	_, err := l.d.failing("LoadLibrary")
	return err
}

func (l fakeLoader) CreateEntry() (Entry, error) {
	if _, err := l.d.failing("CreateEntry"); err != nil {
		return nil, err
	}
	return fakeEntry{l.d}, nil
}

type fakeEntry struct{ d *fakeDriver }

func (e fakeEntry) AvailableLayers() ([]string, Code, error) {
	return e.d.layers, Success, nil
}

func (e fakeEntry) AvailableExtensions() ([]string, Code, error) {
	return e.d.extensions, Success, nil
}

func (e fakeEntry) CreateInstance(info InstanceCreateInfo) (Instance, Code, error) {
	if code, err := e.d.failing("CreateInstance"); err != nil {
		return nil, code, err
	}
	e.d.instanceInfo = info
	return &fakeInstance{d: e.d, handle: e.d.create("Instance")}, Success, nil
}

type fakeInstance struct {
	d      *fakeDriver
	handle Handle
}

func (i *fakeInstance) EnumeratePhysicalDevices() ([]Handle, Code, error) {
	if code, err := i.d.failing("EnumeratePhysicalDevices"); err != nil {
		return nil, code, err
	}
	handles := make([]Handle, len(i.d.devices))
	for idx := range i.d.devices {
		handles[idx] = Handle(idx + 1)
	}
	return handles, Success, nil
}

func (i *fakeInstance) PhysicalDeviceProperties(pd Handle) (DeviceProperties, error) {
	return i.d.physicalDevice(pd).properties, nil
}

func (i *fakeInstance) PhysicalDeviceFeatures(pd Handle) DeviceFeatures {
	return i.d.physicalDevice(pd).features
}

func (i *fakeInstance) QueueFamilyProperties(pd Handle) []QueueFamilyProperties {
	return i.d.physicalDevice(pd).families
}

func (i *fakeInstance) DeviceExtensions(pd Handle) ([]string, Code, error) {
	device := i.d.physicalDevice(pd)
	if device.failExtensions {
		return nil, ErrorOutOfHostMemory, errors.New("extension listing failed")
	}
	return device.extensions, Success, nil
}

func (i *fakeInstance) CreateDebugMessenger(callback DebugCallback) (Handle, Code, error) {
	if code, err := i.d.failing("CreateDebugMessenger"); err != nil {
		return NullHandle, code, err
	}
	i.d.debugLog = callback
	return i.d.create("DebugMessenger"), Success, nil
}

func (i *fakeInstance) DestroyDebugMessenger(messenger Handle) {
	i.d.destroy("DebugMessenger", messenger)
}

func (i *fakeInstance) CreateSurface(window Window) (Handle, error) {
	if _, err := i.d.failing("CreateSurface"); err != nil {
		return NullHandle, ErrUnsupportedWindow
	}
	return i.d.create("Surface"), nil
}

func (i *fakeInstance) DestroySurface(surface Handle) {
	i.d.destroy("Surface", surface)
}

func (i *fakeInstance) SurfaceSupport(pd Handle, family int, surface Handle) (bool, Code, error) {
	device := i.d.physicalDevice(pd)
	if family == device.failSupportAt {
		return false, ErrorSurfaceLost, errors.New("surface support query failed")
	}
	return device.presentSupport[family], Success, nil
}

func (i *fakeInstance) SurfaceCapabilities(pd Handle, surface Handle) (SurfaceCapabilities, Code, error) {
	return i.d.physicalDevice(pd).capabilities, Success, nil
}

func (i *fakeInstance) SurfaceFormats(pd Handle, surface Handle) ([]SurfaceFormat, Code, error) {
	return i.d.physicalDevice(pd).formats, Success, nil
}

func (i *fakeInstance) SurfacePresentModes(pd Handle, surface Handle) ([]PresentMode, Code, error) {
	return i.d.physicalDevice(pd).presentModes, Success, nil
}

func (i *fakeInstance) CreateDevice(pd Handle, info DeviceCreateInfo) (Device, Code, error) {
	if code, err := i.d.failing("CreateDevice"); err != nil {
		return nil, code, err
	}
	i.d.deviceInfo = info
	return &fakeDevice{d: i.d, handle: i.d.create("Device")}, Success, nil
}

func (i *fakeInstance) Destroy() {
	i.d.destroy("Instance", i.handle)
}

type fakeDevice struct {
	d      *fakeDriver
	handle Handle

	nextImage int
}

func (v *fakeDevice) Queue(family int) Handle {
	return Handle(1000 + family)
}

func (v *fakeDevice) CreateSwapchain(info SwapchainCreateInfo) (Handle, Code, error) {
	if code, err := v.d.failing("CreateSwapchain"); err != nil {
		return NullHandle, code, err
	}
	v.d.swapInfo = info
	return v.d.create("Swapchain"), Success, nil
}

func (v *fakeDevice) SwapchainImages(swapchain Handle) ([]Handle, Code, error) {
	images := make([]Handle, v.d.swapImages)
	for idx := range images {
		images[idx] = Handle(2000 + idx)
	}
	return images, Success, nil
}

func (v *fakeDevice) DestroySwapchain(swapchain Handle) { v.d.destroy("Swapchain", swapchain) }

func (v *fakeDevice) CreateImageView(image Handle, format Format) (Handle, Code, error) {
	if code, err := v.d.failing("CreateImageView"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("ImageView"), Success, nil
}

func (v *fakeDevice) DestroyImageView(view Handle) { v.d.destroy("ImageView", view) }

func (v *fakeDevice) CreateRenderPass(info RenderPassCreateInfo) (Handle, Code, error) {
	if code, err := v.d.failing("CreateRenderPass"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("RenderPass"), Success, nil
}

func (v *fakeDevice) DestroyRenderPass(renderPass Handle) { v.d.destroy("RenderPass", renderPass) }

func (v *fakeDevice) CreateShaderModule(code []uint32) (Handle, Code, error) {
	if code, err := v.d.failing("CreateShaderModule"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("ShaderModule"), Success, nil
}

func (v *fakeDevice) DestroyShaderModule(module Handle) { v.d.destroy("ShaderModule", module) }

func (v *fakeDevice) CreatePipelineLayout() (Handle, Code, error) {
	if code, err := v.d.failing("CreatePipelineLayout"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("PipelineLayout"), Success, nil
}

func (v *fakeDevice) DestroyPipelineLayout(layout Handle) { v.d.destroy("PipelineLayout", layout) }

func (v *fakeDevice) CreateGraphicsPipeline(info GraphicsPipelineCreateInfo) (Handle, Code, error) {
	if code, err := v.d.failing("CreateGraphicsPipeline"); err != nil {
		return NullHandle, code, err
	}
	v.d.pipelineInfo = info
	return v.d.create("Pipeline"), Success, nil
}

func (v *fakeDevice) DestroyPipeline(pipeline Handle) { v.d.destroy("Pipeline", pipeline) }

func (v *fakeDevice) CreateFramebuffer(info FramebufferCreateInfo) (Handle, Code, error) {
	if code, err := v.d.failing("CreateFramebuffer"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("Framebuffer"), Success, nil
}

func (v *fakeDevice) DestroyFramebuffer(framebuffer Handle) { v.d.destroy("Framebuffer", framebuffer) }

func (v *fakeDevice) CreateCommandPool(family int) (Handle, Code, error) {
	if code, err := v.d.failing("CreateCommandPool"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("CommandPool"), Success, nil
}

func (v *fakeDevice) DestroyCommandPool(pool Handle) { v.d.destroy("CommandPool", pool) }

func (v *fakeDevice) AllocateCommandBuffers(pool Handle, count int) ([]Handle, Code, error) {
	if code, err := v.d.failing("AllocateCommandBuffers"); err != nil {
		return nil, code, err
	}
	buffers := make([]Handle, count)
	for idx := range buffers {
		buffers[idx] = Handle(3000 + idx)
	}
	return buffers, Success, nil
}

func (v *fakeDevice) BeginCommandBuffer(buffer Handle) (Code, error) {
	v.d.calls = append(v.d.calls, "BeginCommandBuffer")
	return v.d.failing("BeginCommandBuffer")
}

func (v *fakeDevice) CmdBeginRenderPass(buffer Handle, info RenderPassBeginInfo) error {
	v.d.calls = append(v.d.calls, "CmdBeginRenderPass")
	v.d.beginInfos = append(v.d.beginInfos, info)
	return nil
}

func (v *fakeDevice) CmdBindPipeline(buffer Handle, pipeline Handle) {
	v.d.calls = append(v.d.calls, "CmdBindPipeline")
}

func (v *fakeDevice) CmdDraw(buffer Handle, vertexCount, instanceCount, firstVertex, firstInstance int) {
	v.d.calls = append(v.d.calls, "CmdDraw")
}

func (v *fakeDevice) CmdEndRenderPass(buffer Handle) {
	v.d.calls = append(v.d.calls, "CmdEndRenderPass")
}

func (v *fakeDevice) EndCommandBuffer(buffer Handle) (Code, error) {
	v.d.calls = append(v.d.calls, "EndCommandBuffer")
	return Success, nil
}

func (v *fakeDevice) CreateSemaphore() (Handle, Code, error) {
	if code, err := v.d.failing("CreateSemaphore"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("Semaphore"), Success, nil
}

func (v *fakeDevice) DestroySemaphore(semaphore Handle) { v.d.destroy("Semaphore", semaphore) }

func (v *fakeDevice) CreateFence(signaled bool) (Handle, Code, error) {
	if code, err := v.d.failing("CreateFence"); err != nil {
		return NullHandle, code, err
	}
	return v.d.create("Fence"), Success, nil
}

func (v *fakeDevice) DestroyFence(fence Handle) { v.d.destroy("Fence", fence) }

func (v *fakeDevice) WaitForFences(fences ...Handle) (Code, error) {
	v.d.calls = append(v.d.calls, "WaitForFences")
	return v.d.failing("WaitForFences")
}

func (v *fakeDevice) ResetFences(fences ...Handle) (Code, error) {
	v.d.calls = append(v.d.calls, "ResetFences")
	return v.d.failing("ResetFences")
}

func (v *fakeDevice) AcquireNextImage(swapchain Handle, semaphore Handle) (int, Code, error) {
	if code, err := v.d.failing("AcquireNextImage"); err != nil {
		return 0, code, err
	}
	image := v.nextImage
	v.nextImage = (v.nextImage + 1) % v.d.swapImages
	return image, Success, nil
}

func (v *fakeDevice) QueueSubmit(queue Handle, fence Handle, info SubmitInfo) (Code, error) {
	if code, err := v.d.failing("QueueSubmit"); err != nil {
		return code, err
	}
	v.d.submits = append(v.d.submits, info)
	return Success, nil
}

func (v *fakeDevice) QueuePresent(queue Handle, info PresentInfo) (Code, error) {
	if code, err := v.d.failing("QueuePresent"); err != nil {
		return code, err
	}
	v.d.presents = append(v.d.presents, info)
	return Success, nil
}

func (v *fakeDevice) QueueWaitIdle(queue Handle) (Code, error) {
	v.d.calls = append(v.d.calls, "QueueWaitIdle")
	return Success, nil
}

func (v *fakeDevice) WaitIdle() (Code, error) {
	v.d.calls = append(v.d.calls, "WaitIdle")
	return Success, nil
}

func (v *fakeDevice) Destroy() {
	v.d.destroy("Device", v.handle)
}
