// Package render bootstraps a Vulkan rendering context able to draw a single triangle.
//
// The context is built by a chain of stages, each a distinct type exposing the one
// operation that creates its native objects and returns the next stage:
//
//	ConnectionStage -> InstanceStage -> SurfaceStage -> PhysicalDeviceStage ->
//	LogicalDeviceStage -> SwapChainStage -> PipelineStage -> FramebufferStage ->
//	CommandStage -> SyncStage -> EndStage -> *Context
//
// Create runs the whole chain. The native API is reached through the Loader, Entry,
// Instance and Device interfaces; package vkng implements them on top of vkngwrapper.
package render
