// Command triangle opens a window and draws a single triangle with Vulkan until the
// window is closed.
package main

//go:generate glslc shaders/shader.vert -o shaders/vert.spv
//go:generate glslc shaders/shader.frag -o shaders/frag.spv

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/renderqueue/render"
	"github.com/vkngwrapper/renderqueue/render/vkng"
)

func loadShader(dir, name string) (render.Shader, error) {
	code, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return render.Shader{}, errors.Wrap(err, "read shader")
	}
	return render.NewShader(code)
}

func loadShaders(dir string) (render.ShaderSet, error) {
	vertex, err := loadShader(dir, "vert.spv")
	if err != nil {
		return render.ShaderSet{}, err
	}

	fragment, err := loadShader(dir, "frag.spv")
	if err != nil {
		return render.ShaderSet{}, err
	}

	return render.ShaderSet{Vertex: vertex, Fragment: fragment}, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)

	shaders, err := loadShaders(cfg.ShaderDir)
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "sdl: init")
	}
	defer sdl.Quit()

	resolution := cfg.Render.RenderingResolution
	window, err := vkng.NewWindow(cfg.Render.ApplicationName, int32(resolution.Width), int32(resolution.Height))
	if err != nil {
		return err
	}
	defer window.Destroy()

	ctx, err := render.Create(cfg.Render, &vkng.Loader{}, window, shaders, log.StandardLogger())
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	if err := mainLoop(ctx); err != nil {
		return err
	}
	return ctx.WaitIdle()
}

func mainLoop(ctx *render.Context) error {
	rendering := true

	for {
		// Nothing is drawn while minimized, so block for events.
		next := sdl.PollEvent
		if !rendering {
			next = sdl.WaitEvent
		}

		for event := next(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.WindowEvent:
				switch e.Event {
				case sdl.WINDOWEVENT_MINIMIZED:
					rendering = false
				case sdl.WINDOWEVENT_RESTORED:
					rendering = true
				}
			}
		}

		if rendering {
			if err := ctx.DrawFrame(); err != nil {
				return err
			}
		}
	}
}

func main() {
	runtime.LockOSThread()

	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}
