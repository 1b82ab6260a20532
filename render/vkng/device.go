package vkng

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/renderqueue/render"
)

type device struct {
	instance       *instance
	physicalDevice core1_0.PhysicalDevice
	driver         core1_0.CoreDeviceDriver
	swapchainExt   khr_swapchain.ExtensionDriver

	queueByFamily map[int]render.Handle
	poolBuffers   map[render.Handle][]render.Handle

	queues          registry[core1_0.Queue]
	swapchains      registry[khr_swapchain.Swapchain]
	images          registry[core1_0.Image]
	imageViews      registry[core1_0.ImageView]
	renderPasses    registry[core1_0.RenderPass]
	shaderModules   registry[core1_0.ShaderModule]
	pipelineLayouts registry[core1_0.PipelineLayout]
	pipelines       registry[core1_0.Pipeline]
	framebuffers    registry[core1_0.Framebuffer]
	commandPools    registry[core1_0.CommandPool]
	commandBuffers  registry[core1_0.CommandBuffer]
	semaphores      registry[core1_0.Semaphore]
	fences          registry[core1_0.Fence]
}

func newDevice(instance *instance, physicalDevice core1_0.PhysicalDevice, driver core1_0.CoreDeviceDriver) *device {
	source := instance.source
	return &device{
		instance:       instance,
		physicalDevice: physicalDevice,
		driver:         driver,
		swapchainExt:   khr_swapchain.CreateExtensionDriverFromCoreDriver(driver),

		queueByFamily: make(map[int]render.Handle),
		poolBuffers:   make(map[render.Handle][]render.Handle),

		queues:          newRegistry[core1_0.Queue](source),
		swapchains:      newRegistry[khr_swapchain.Swapchain](source),
		images:          newRegistry[core1_0.Image](source),
		imageViews:      newRegistry[core1_0.ImageView](source),
		renderPasses:    newRegistry[core1_0.RenderPass](source),
		shaderModules:   newRegistry[core1_0.ShaderModule](source),
		pipelineLayouts: newRegistry[core1_0.PipelineLayout](source),
		pipelines:       newRegistry[core1_0.Pipeline](source),
		framebuffers:    newRegistry[core1_0.Framebuffer](source),
		commandPools:    newRegistry[core1_0.CommandPool](source),
		commandBuffers:  newRegistry[core1_0.CommandBuffer](source),
		semaphores:      newRegistry[core1_0.Semaphore](source),
		fences:          newRegistry[core1_0.Fence](source),
	}
}

// Queue returns the first queue of the family. Asking twice for the same family
// yields the same handle.
func (d *device) Queue(queueFamily int) render.Handle {
	if handle, ok := d.queueByFamily[queueFamily]; ok {
		return handle
	}
	handle := d.queues.add(d.driver.GetQueue(queueFamily, 0))
	d.queueByFamily[queueFamily] = handle
	return handle
}

func (d *device) CreateSwapchain(info render.SwapchainCreateInfo) (render.Handle, render.Code, error) {
	surface := d.instance.surfaces.get(info.Surface)
	capabilities, res, err := d.instance.surfaceCapabilities(d.physicalDevice, surface)
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}

	swapchain, res, err := d.swapchainExt.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      core1_0.Format(info.ImageFormat),
		ImageColorSpace:  khr_surface.ColorSpace(info.ImageColorSpace),
		ImageExtent:      toExtent(info.ImageExtent),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   core1_0.SharingMode(info.SharingMode),
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(info.PresentMode),
		Clipped:        info.Clipped,
	})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.swapchains.add(swapchain), render.Code(res), nil
}

func (d *device) SwapchainImages(swapchain render.Handle) ([]render.Handle, render.Code, error) {
	images, res, err := d.swapchainExt.GetSwapchainImages(d.swapchains.get(swapchain))
	if err != nil {
		return nil, render.Code(res), err
	}
	return d.images.addAll(images), render.Code(res), nil
}

func (d *device) DestroySwapchain(swapchain render.Handle) {
	if object, ok := d.swapchains.remove(swapchain); ok {
		d.swapchainExt.DestroySwapchain(object, nil)
	}
	// Swap chain images are owned by the swap chain.
	for handle := range d.images.objects {
		delete(d.images.objects, handle)
	}
}

func (d *device) CreateImageView(image render.Handle, format render.Format) (render.Handle, render.Code, error) {
	view, res, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    d.images.get(image),
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.Format(format),
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.imageViews.add(view), render.Code(res), nil
}

func (d *device) DestroyImageView(imageView render.Handle) {
	if object, ok := d.imageViews.remove(imageView); ok {
		d.driver.DestroyImageView(object, nil)
	}
}

func (d *device) CreateRenderPass(info render.RenderPassCreateInfo) (render.Handle, render.Code, error) {
	renderPass, res, err := d.driver.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         core1_0.Format(info.ColorFormat),
				Samples:        core1_0.SampleCountFlags(info.Samples),
				LoadOp:         core1_0.AttachmentLoadOp(info.LoadOp),
				StoreOp:        core1_0.AttachmentStoreOp(info.StoreOp),
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayout(info.InitialLayout),
				FinalLayout:    core1_0.ImageLayout(info.FinalLayout),
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.renderPasses.add(renderPass), render.Code(res), nil
}

func (d *device) DestroyRenderPass(renderPass render.Handle) {
	if object, ok := d.renderPasses.remove(renderPass); ok {
		d.driver.DestroyRenderPass(object, nil)
	}
}

func (d *device) CreateShaderModule(code []uint32) (render.Handle, render.Code, error) {
	module, res, err := d.driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.shaderModules.add(module), render.Code(res), nil
}

func (d *device) DestroyShaderModule(module render.Handle) {
	if object, ok := d.shaderModules.remove(module); ok {
		d.driver.DestroyShaderModule(object, nil)
	}
}

func (d *device) CreatePipelineLayout() (render.Handle, render.Code, error) {
	layout, res, err := d.driver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.pipelineLayouts.add(layout), render.Code(res), nil
}

func (d *device) DestroyPipelineLayout(layout render.Handle) {
	if object, ok := d.pipelineLayouts.remove(layout); ok {
		d.driver.DestroyPipelineLayout(object, nil)
	}
}

func (d *device) CreateGraphicsPipeline(info render.GraphicsPipelineCreateInfo) (render.Handle, render.Code, error) {
	stages := make([]core1_0.PipelineShaderStageCreateInfo, len(info.Stages))
	for idx, stage := range info.Stages {
		stages[idx] = core1_0.PipelineShaderStageCreateInfo{
			Stage:  core1_0.ShaderStageFlags(stage.Stage),
			Module: d.shaderModules.get(stage.Module),
			Name:   stage.Name,
		}
	}

	pipelines, res, err := d.driver.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages:           stages,
			VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{},
			InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
				Topology:               core1_0.PrimitiveTopology(info.Topology),
				PrimitiveRestartEnable: info.PrimitiveRestart,
			},
			ViewportState: &core1_0.PipelineViewportStateCreateInfo{
				Viewports: []core1_0.Viewport{
					{
						X:        info.Viewport.X,
						Y:        info.Viewport.Y,
						Width:    info.Viewport.Width,
						Height:   info.Viewport.Height,
						MinDepth: info.Viewport.MinDepth,
						MaxDepth: info.Viewport.MaxDepth,
					},
				},
				Scissors: []core1_0.Rect2D{
					{
						Offset: core1_0.Offset2D{X: 0, Y: 0},
						Extent: toExtent(info.Scissor),
					},
				},
			},
			RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
				DepthClampEnable:        info.DepthClamp,
				RasterizerDiscardEnable: info.RasterizerDiscard,

				PolygonMode: core1_0.PolygonMode(info.PolygonMode),
				CullMode:    core1_0.CullModeFlags(info.CullMode),
				FrontFace:   core1_0.FrontFace(info.FrontFace),

				DepthBiasEnable: info.DepthBias,

				LineWidth: info.LineWidth,
			},
			MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
				SampleShadingEnable:  info.SampleShading,
				RasterizationSamples: core1_0.SampleCountFlags(info.Samples),
				MinSampleShading:     1.0,
			},
			ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
				LogicOpEnabled: info.LogicOpEnabled,
				LogicOp:        core1_0.LogicOpCopy,

				BlendConstants: [4]float32{0, 0, 0, 0},
				Attachments: []core1_0.PipelineColorBlendAttachmentState{
					{
						BlendEnabled:   info.BlendEnabled,
						ColorWriteMask: core1_0.ColorComponentFlags(info.ColorWriteMask),
					},
				},
			},
			Layout:            d.pipelineLayouts.get(info.Layout),
			RenderPass:        d.renderPasses.get(info.RenderPass),
			Subpass:           info.Subpass,
			BasePipelineIndex: -1,
		},
	)
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.pipelines.add(pipelines[0]), render.Code(res), nil
}

func (d *device) DestroyPipeline(pipeline render.Handle) {
	if object, ok := d.pipelines.remove(pipeline); ok {
		d.driver.DestroyPipeline(object, nil)
	}
}

func (d *device) CreateFramebuffer(info render.FramebufferCreateInfo) (render.Handle, render.Code, error) {
	framebuffer, res, err := d.driver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
		RenderPass:  d.renderPasses.get(info.RenderPass),
		Layers:      info.Layers,
		Attachments: d.imageViews.getAll(info.Attachments),
		Width:       info.Width,
		Height:      info.Height,
	})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.framebuffers.add(framebuffer), render.Code(res), nil
}

func (d *device) DestroyFramebuffer(framebuffer render.Handle) {
	if object, ok := d.framebuffers.remove(framebuffer); ok {
		d.driver.DestroyFramebuffer(object, nil)
	}
}

func (d *device) CreateCommandPool(queueFamily int) (render.Handle, render.Code, error) {
	pool, res, err := d.driver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: queueFamily,
	})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.commandPools.add(pool), render.Code(res), nil
}

func (d *device) DestroyCommandPool(pool render.Handle) {
	if object, ok := d.commandPools.remove(pool); ok {
		d.driver.DestroyCommandPool(object, nil)
	}
	for _, buffer := range d.poolBuffers[pool] {
		d.commandBuffers.remove(buffer)
	}
	delete(d.poolBuffers, pool)
}

func (d *device) AllocateCommandBuffers(pool render.Handle, count int) ([]render.Handle, render.Code, error) {
	buffers, res, err := d.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        d.commandPools.get(pool),
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	})
	if err != nil {
		return nil, render.Code(res), err
	}
	handles := d.commandBuffers.addAll(buffers)
	d.poolBuffers[pool] = append(d.poolBuffers[pool], handles...)
	return handles, render.Code(res), nil
}

func (d *device) BeginCommandBuffer(buffer render.Handle) (render.Code, error) {
	res, err := d.driver.BeginCommandBuffer(d.commandBuffers.get(buffer), core1_0.CommandBufferBeginInfo{})
	return render.Code(res), err
}

func (d *device) CmdBeginRenderPass(buffer render.Handle, info render.RenderPassBeginInfo) error {
	return d.driver.CmdBeginRenderPass(d.commandBuffers.get(buffer), core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  d.renderPasses.get(info.RenderPass),
			Framebuffer: d.framebuffers.get(info.Framebuffer),
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: toExtent(info.Extent),
			},
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat(info.ClearColor),
			},
		})
}

func (d *device) CmdBindPipeline(buffer render.Handle, pipeline render.Handle) {
	d.driver.CmdBindPipeline(d.commandBuffers.get(buffer), core1_0.PipelineBindPointGraphics, d.pipelines.get(pipeline))
}

func (d *device) CmdDraw(buffer render.Handle, vertexCount, instanceCount, firstVertex, firstInstance int) {
	d.driver.CmdDraw(d.commandBuffers.get(buffer), vertexCount, instanceCount, uint32(firstVertex), uint32(firstInstance))
}

func (d *device) CmdEndRenderPass(buffer render.Handle) {
	d.driver.CmdEndRenderPass(d.commandBuffers.get(buffer))
}

func (d *device) EndCommandBuffer(buffer render.Handle) (render.Code, error) {
	res, err := d.driver.EndCommandBuffer(d.commandBuffers.get(buffer))
	return render.Code(res), err
}

func (d *device) CreateSemaphore() (render.Handle, render.Code, error) {
	semaphore, res, err := d.driver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.semaphores.add(semaphore), render.Code(res), nil
}

func (d *device) DestroySemaphore(semaphore render.Handle) {
	if object, ok := d.semaphores.remove(semaphore); ok {
		d.driver.DestroySemaphore(object, nil)
	}
}

func (d *device) CreateFence(signaled bool) (render.Handle, render.Code, error) {
	var info core1_0.FenceCreateInfo
	if signaled {
		info.Flags = core1_0.FenceCreateSignaled
	}

	fence, res, err := d.driver.CreateFence(nil, info)
	if err != nil {
		return render.NullHandle, render.Code(res), err
	}
	return d.fences.add(fence), render.Code(res), nil
}

func (d *device) DestroyFence(fence render.Handle) {
	if object, ok := d.fences.remove(fence); ok {
		d.driver.DestroyFence(object, nil)
	}
}

func (d *device) WaitForFences(fences ...render.Handle) (render.Code, error) {
	res, err := d.driver.WaitForFences(true, common.NoTimeout, d.fences.getAll(fences)...)
	return render.Code(res), err
}

func (d *device) ResetFences(fences ...render.Handle) (render.Code, error) {
	res, err := d.driver.ResetFences(d.fences.getAll(fences)...)
	return render.Code(res), err
}

func (d *device) AcquireNextImage(swapchain render.Handle, semaphore render.Handle) (int, render.Code, error) {
	object := d.semaphores.get(semaphore)
	imageIndex, res, err := d.swapchainExt.AcquireNextImage(d.swapchains.get(swapchain), common.NoTimeout, &object, nil)
	return imageIndex, render.Code(res), err
}

func (d *device) QueueSubmit(queue render.Handle, fence render.Handle, info render.SubmitInfo) (render.Code, error) {
	var fencePtr *core1_0.Fence
	if fence != render.NullHandle {
		object := d.fences.get(fence)
		fencePtr = &object
	}

	res, err := d.driver.QueueSubmit(d.queues.get(queue), fencePtr, core1_0.SubmitInfo{
		WaitSemaphores:   d.semaphores.getAll(info.WaitSemaphores),
		WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
		CommandBuffers:   d.commandBuffers.getAll(info.CommandBuffers),
		SignalSemaphores: d.semaphores.getAll(info.SignalSemaphores),
	})
	return render.Code(res), err
}

func (d *device) QueuePresent(queue render.Handle, info render.PresentInfo) (render.Code, error) {
	res, err := d.swapchainExt.QueuePresent(d.queues.get(queue), khr_swapchain.PresentInfo{
		WaitSemaphores: d.semaphores.getAll(info.WaitSemaphores),
		Swapchains:     []khr_swapchain.Swapchain{d.swapchains.get(info.Swapchain)},
		ImageIndices:   []int{info.ImageIndex},
	})
	return render.Code(res), err
}

func (d *device) QueueWaitIdle(queue render.Handle) (render.Code, error) {
	res, err := d.driver.QueueWaitIdle(d.queues.get(queue))
	return render.Code(res), err
}

func (d *device) WaitIdle() (render.Code, error) {
	res, err := d.driver.DeviceWaitIdle()
	return render.Code(res), err
}

func (d *device) Destroy() {
	d.driver.DestroyDevice(nil)
}

var _ render.Device = (*device)(nil)
