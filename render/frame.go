package render

// DrawFrame acquires the next swap chain image, submits its prerecorded command buffer
// and queues the image for presentation.
func (c *Context) DrawFrame() error {
	if c.res == nil {
		return ErrContextDestroyed
	}
	res := c.res

	var fence Handle
	if len(res.sync.InFlight) > 0 {
		fence = res.sync.InFlight[c.currentFrame]

		if code, err := res.device.WaitForFences(fence); err != nil {
			return newError(WaitForFencesError, code, err)
		}
	}

	imageIndex, code, err := res.device.AcquireNextImage(res.swapChain.Handle, res.sync.ImageAvailable)
	if err != nil {
		return newError(AcquireImageError, code, err)
	}

	// The fence is only reset once a submit is certain to signal it again.
	if fence != NullHandle {
		if code, err := res.device.ResetFences(fence); err != nil {
			return newError(ResetFenceError, code, err)
		}
	}

	code, err = res.device.QueueSubmit(res.graphicsQueue, fence, SubmitInfo{
		WaitSemaphores:   []Handle{res.sync.ImageAvailable},
		CommandBuffers:   []Handle{res.commandBuffers[imageIndex]},
		SignalSemaphores: []Handle{res.sync.RenderFinished},
	})
	if err != nil {
		return newError(QueueSubmitError, code, err)
	}

	code, err = res.device.QueuePresent(res.presentQueue, PresentInfo{
		WaitSemaphores: []Handle{res.sync.RenderFinished},
		Swapchain:      res.swapChain.Handle,
		ImageIndex:     imageIndex,
	})
	if err != nil {
		return newError(PresentationError, code, err)
	}

	if fence == NullHandle {
		if code, err := res.device.QueueWaitIdle(res.presentQueue); err != nil {
			return newError(PresentationError, code, err)
		}
		return nil
	}

	c.currentFrame = (c.currentFrame + 1) % len(res.sync.InFlight)
	return nil
}

// WaitIdle blocks until the device has finished all submitted work. Call it before
// Destroy while frames may still be in flight.
func (c *Context) WaitIdle() error {
	if c.res == nil {
		return nil
	}
	if code, err := c.res.device.WaitIdle(); err != nil {
		return newError(PresentationError, code, err)
	}
	return nil
}
