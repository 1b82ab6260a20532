package render

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

// Create builds a complete rendering context for window. When a stage fails, the
// handles of the completed stages are released before the stage's error is returned.
func Create(cfg Config, loader Loader, window Window, shaders ShaderSet, log logrus.FieldLogger) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	b := &builder{log: log}

	connection := NewBuilder(cfg, loader, window, shaders, log)
	b.current = &connection.stage

	instance, err := timed(b, "OpenConnection", connection.OpenConnection)
	if err != nil {
		return nil, err
	}
	surface, err := timed(b, "CreateInstance", instance.CreateInstance)
	if err != nil {
		return nil, err
	}
	physicalDevice, err := timed(b, "CreateSurface", surface.CreateSurface)
	if err != nil {
		return nil, err
	}
	logicalDevice, err := timed(b, "ChoosePhysicalDevice", physicalDevice.ChoosePhysicalDevice)
	if err != nil {
		return nil, err
	}
	swapChain, err := timed(b, "CreateLogicalDevice", logicalDevice.CreateLogicalDevice)
	if err != nil {
		return nil, err
	}
	pipeline, err := timed(b, "CreateSwapChain", swapChain.CreateSwapChain)
	if err != nil {
		return nil, err
	}
	framebuffers, err := timed(b, "CreatePipeline", pipeline.CreatePipeline)
	if err != nil {
		return nil, err
	}
	commands, err := timed(b, "CreateFramebuffers", framebuffers.CreateFramebuffers)
	if err != nil {
		return nil, err
	}
	sync, err := timed(b, "CreateCommandBuffers", commands.CreateCommandBuffers)
	if err != nil {
		return nil, err
	}
	end, err := timed(b, "CreateSyncObjects", sync.CreateSyncObjects)
	if err != nil {
		return nil, err
	}

	ctx, err := end.Build()
	if err != nil {
		return nil, err
	}

	log.WithField("duration", b.total).Info("Rendering context created")
	return ctx, nil
}

type builder struct {
	log     logrus.FieldLogger
	current *stage
	total   time.Duration
}

type advancer interface {
	base() *stage
}

func (s *stage) base() *stage { return s }

// timed runs one stage operation. On failure it aborts the stage that failed, which
// still holds the bundle, otherwise it tracks the returned stage for the next call.
func timed[T advancer](b *builder, name string, op func() (T, error)) (T, error) {
	start := hrtime.Now()
	next, err := op()
	elapsed := hrtime.Since(start)
	b.total += elapsed

	entry := b.log.WithFields(logrus.Fields{
		"stage":    name,
		"duration": elapsed,
	})
	if err != nil {
		entry.WithError(err).Error("Stage failed")
		b.current.Abort()
		return next, err
	}

	entry.Debug("Stage complete")
	b.current = next.base()
	return next, nil
}
