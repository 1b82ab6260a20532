package render

import (
	"fmt"

	"github.com/google/uuid"
)

// Handle is an opaque native object handle. Handles are produced and consumed by the
// driver implementation; the core never interprets them.
type Handle uint64

const NullHandle Handle = 0

// Code is a native status code, using the Vulkan VkResult values.
type Code int32

const (
	Success                   Code = 0
	NotReady                  Code = 1
	Timeout                   Code = 2
	Suboptimal                Code = 1000001003
	ErrorOutOfHostMemory      Code = -1
	ErrorOutOfDeviceMemory    Code = -2
	ErrorInitializationFailed Code = -3
	ErrorDeviceLost           Code = -4
	ErrorLayerNotPresent      Code = -6
	ErrorExtensionNotPresent  Code = -7
	ErrorFeatureNotPresent    Code = -8
	ErrorIncompatibleDriver   Code = -9
	ErrorSurfaceLost          Code = -1000000000
	ErrorOutOfDate            Code = -1000001004
	ErrorUnknown              Code = -13
)

var codeNames = map[Code]string{
	Success:                   "VK_SUCCESS",
	NotReady:                  "VK_NOT_READY",
	Timeout:                   "VK_TIMEOUT",
	Suboptimal:                "VK_SUBOPTIMAL_KHR",
	ErrorOutOfHostMemory:      "VK_ERROR_OUT_OF_HOST_MEMORY",
	ErrorOutOfDeviceMemory:    "VK_ERROR_OUT_OF_DEVICE_MEMORY",
	ErrorInitializationFailed: "VK_ERROR_INITIALIZATION_FAILED",
	ErrorDeviceLost:           "VK_ERROR_DEVICE_LOST",
	ErrorLayerNotPresent:      "VK_ERROR_LAYER_NOT_PRESENT",
	ErrorExtensionNotPresent:  "VK_ERROR_EXTENSION_NOT_PRESENT",
	ErrorFeatureNotPresent:    "VK_ERROR_FEATURE_NOT_PRESENT",
	ErrorIncompatibleDriver:   "VK_ERROR_INCOMPATIBLE_DRIVER",
	ErrorSurfaceLost:          "VK_ERROR_SURFACE_LOST_KHR",
	ErrorOutOfDate:            "VK_ERROR_OUT_OF_DATE_KHR",
	ErrorUnknown:              "VK_ERROR_UNKNOWN",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("VkResult(%d)", int32(c))
}

type Extent2D struct {
	Width  int
	Height int
}

type Format int32

const (
	FormatUndefined     Format = 0
	FormatB8G8R8A8UNorm Format = 44
	FormatB8G8R8A8SRGB  Format = 50
)

type ColorSpace int32

const ColorSpaceSRGBNonlinear ColorSpace = 0

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeFIFO:
		return "FIFO"
	case PresentModeFIFORelaxed:
		return "FIFO Relaxed"
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

type DeviceType int32

const (
	DeviceTypeOther         DeviceType = 0
	DeviceTypeIntegratedGPU DeviceType = 1
	DeviceTypeDiscreteGPU   DeviceType = 2
	DeviceTypeVirtualGPU    DeviceType = 3
	DeviceTypeCPU           DeviceType = 4
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeOther:
		return "Other"
	case DeviceTypeIntegratedGPU:
		return "Integrated GPU"
	case DeviceTypeDiscreteGPU:
		return "Discrete GPU"
	case DeviceTypeVirtualGPU:
		return "Virtual GPU"
	case DeviceTypeCPU:
		return "CPU"
	}
	return fmt.Sprintf("DeviceType(%d)", int32(t))
}

type QueueFlags uint32

const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
)

// DeviceProperties is the subset of physical device properties the selector reads.
type DeviceProperties struct {
	Name              string
	Type              DeviceType
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	PipelineCacheUUID uuid.UUID
}

type DeviceFeatures struct {
	GeometryShader    bool
	SamplerAnisotropy bool
}

type QueueFamilyProperties struct {
	Flags QueueFlags
	Count int
}

type SurfaceCapabilities struct {
	MinImageCount  int
	MaxImageCount  int
	CurrentExtent  Extent2D
	MinImageExtent Extent2D
	MaxImageExtent Extent2D
}

type InstanceCreateInfo struct {
	ApplicationName      string
	EngineName           string
	EnabledLayers        []string
	EnabledExtensions    []string
	EnumeratePortability bool

	// DebugCallback is installed as the instance-creation messenger when not nil.
	DebugCallback DebugCallback
}

type DeviceQueueCreateInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	QueueCreateInfos  []DeviceQueueCreateInfo
	EnabledLayers     []string
	EnabledExtensions []string
	EnabledFeatures   DeviceFeatures
}

type SharingMode int32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

type SwapchainCreateInfo struct {
	Surface            Handle
	MinImageCount      int
	ImageFormat        Format
	ImageColorSpace    ColorSpace
	ImageExtent        Extent2D
	SharingMode        SharingMode
	QueueFamilyIndices []int
	PresentMode        PresentMode
	Clipped            bool
}

type AttachmentLoadOp int32

const (
	LoadOpLoad     AttachmentLoadOp = 0
	LoadOpClear    AttachmentLoadOp = 1
	LoadOpDontCare AttachmentLoadOp = 2
)

type AttachmentStoreOp int32

const (
	StoreOpStore    AttachmentStoreOp = 0
	StoreOpDontCare AttachmentStoreOp = 1
)

type ImageLayout int32

const (
	ImageLayoutUndefined              ImageLayout = 0
	ImageLayoutColorAttachmentOptimal ImageLayout = 2
	ImageLayoutPresentSrc             ImageLayout = 1000001002
)

// RenderPassCreateInfo describes a render pass with one color attachment and one subpass.
type RenderPassCreateInfo struct {
	ColorFormat   Format
	Samples       int
	LoadOp        AttachmentLoadOp
	StoreOp       AttachmentStoreOp
	InitialLayout ImageLayout
	FinalLayout   ImageLayout
}

type ShaderStage uint32

const (
	StageVertex   ShaderStage = 0x1
	StageFragment ShaderStage = 0x10
)

type PipelineShaderStage struct {
	Stage  ShaderStage
	Module Handle
	Name   string
}

type PrimitiveTopology int32

const (
	TopologyPointList    PrimitiveTopology = 0
	TopologyLineList     PrimitiveTopology = 1
	TopologyTriangleList PrimitiveTopology = 3
)

type PolygonMode int32

const (
	PolygonModeFill  PolygonMode = 0
	PolygonModeLine  PolygonMode = 1
	PolygonModePoint PolygonMode = 2
)

type CullMode uint32

const (
	CullModeNone  CullMode = 0
	CullModeFront CullMode = 0x1
	CullModeBack  CullMode = 0x2
)

type FrontFace int32

const (
	FrontFaceCounterClockwise FrontFace = 0
	FrontFaceClockwise        FrontFace = 1
)

type ColorComponents uint32

const (
	ColorComponentR   ColorComponents = 0x1
	ColorComponentG   ColorComponents = 0x2
	ColorComponentB   ColorComponents = 0x4
	ColorComponentA   ColorComponents = 0x8
	ColorComponentAll                 = ColorComponentR | ColorComponentG | ColorComponentB | ColorComponentA
)

type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// GraphicsPipelineCreateInfo carries the fixed-function state of the single graphics pipeline.
type GraphicsPipelineCreateInfo struct {
	Stages []PipelineShaderStage

	Topology         PrimitiveTopology
	PrimitiveRestart bool

	Viewport Viewport
	Scissor  Extent2D

	DepthClamp        bool
	RasterizerDiscard bool
	PolygonMode       PolygonMode
	CullMode          CullMode
	FrontFace         FrontFace
	DepthBias         bool
	LineWidth         float32

	DepthTest      bool
	Samples        int
	SampleShading  bool
	BlendEnabled   bool
	LogicOpEnabled bool
	ColorWriteMask ColorComponents

	Layout     Handle
	RenderPass Handle
	Subpass    int
}

type FramebufferCreateInfo struct {
	RenderPass  Handle
	Attachments []Handle
	Width       int
	Height      int
	Layers      int
}

// RenderPassBeginInfo describes how a recorded command buffer enters the render pass.
type RenderPassBeginInfo struct {
	RenderPass  Handle
	Framebuffer Handle
	Extent      Extent2D
	ClearColor  [4]float32
}

type SubmitInfo struct {
	WaitSemaphores   []Handle
	CommandBuffers   []Handle
	SignalSemaphores []Handle
}

type PresentInfo struct {
	WaitSemaphores []Handle
	Swapchain      Handle
	ImageIndex     int
}
