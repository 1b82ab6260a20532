package render

import "github.com/cockroachdb/errors"

const shaderEntryPoint = "main"

// CreatePipeline creates the render pass, the pipeline layout and the fixed graphics
// pipeline drawing with the vertex and fragment shaders. The shader modules only live
// for the duration of the call.
func (s *PipelineStage) CreatePipeline() (_ *FramebufferStage, err error) {
	res, err := s.resources()
	if err != nil {
		return nil, err
	}

	var renderPass, layout Handle
	defer func() {
		if err == nil {
			return
		}
		if layout != NullHandle {
			res.device.DestroyPipelineLayout(layout)
		}
		if renderPass != NullHandle {
			res.device.DestroyRenderPass(renderPass)
		}
	}()

	renderPass, code, err := res.device.CreateRenderPass(colorRenderPass(res.swapChain.Format.Format))
	if err != nil {
		return nil, newError(CreateRenderPassError, code, err)
	}

	vertex, code, err := res.device.CreateShaderModule(res.shaders.Vertex.Code())
	if err != nil {
		return nil, newError(LoadShadersError, code, errors.Wrap(err, "vertex shader"))
	}
	defer res.device.DestroyShaderModule(vertex)

	fragment, code, err := res.device.CreateShaderModule(res.shaders.Fragment.Code())
	if err != nil {
		return nil, newError(LoadShadersError, code, errors.Wrap(err, "fragment shader"))
	}
	defer res.device.DestroyShaderModule(fragment)

	layout, code, err = res.device.CreatePipelineLayout()
	if err != nil {
		return nil, newError(CreatePipelineLayoutError, code, err)
	}

	pipeline, code, err := res.device.CreateGraphicsPipeline(trianglePipeline(res.swapChain.Extent, vertex, fragment, layout, renderPass))
	if err != nil {
		return nil, newError(BuildPipelinesError, code, err)
	}

	res.renderPass = renderPass
	res.pipelineLayout = layout
	res.pipeline = pipeline

	return &FramebufferStage{s.advance()}, nil
}

// colorRenderPass clears the single color attachment and hands it to presentation.
func colorRenderPass(format Format) RenderPassCreateInfo {
	return RenderPassCreateInfo{
		ColorFormat:   format,
		Samples:       1,
		LoadOp:        LoadOpClear,
		StoreOp:       StoreOpStore,
		InitialLayout: ImageLayoutUndefined,
		FinalLayout:   ImageLayoutPresentSrc,
	}
}

func trianglePipeline(extent Extent2D, vertex, fragment, layout, renderPass Handle) GraphicsPipelineCreateInfo {
	return GraphicsPipelineCreateInfo{
		Stages: []PipelineShaderStage{
			{Stage: StageVertex, Module: vertex, Name: shaderEntryPoint},
			{Stage: StageFragment, Module: fragment, Name: shaderEntryPoint},
		},

		Topology: TopologyTriangleList,

		Viewport: Viewport{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0,
			MaxDepth: 1,
		},
		Scissor: extent,

		PolygonMode: PolygonModeFill,
		CullMode:    CullModeBack,
		FrontFace:   FrontFaceClockwise,
		LineWidth:   1.0,

		Samples:        1,
		ColorWriteMask: ColorComponentAll,

		Layout:     layout,
		RenderPass: renderPass,
		Subpass:    0,
	}
}
