package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/renderqueue/render"
)

// Environment keys, also read from a .env file in the working directory. Empty values
// keep the defaults.
const (
	envValidation  = "RENDER_VALIDATION"
	envWidth       = "RENDER_WIDTH"
	envHeight      = "RENDER_HEIGHT"
	envFramePacing = "RENDER_FRAME_PACING"
	envShaderDir   = "RENDER_SHADER_DIR"
	envLogLevel    = "RENDER_LOG_LEVEL"
)

type config struct {
	Render    render.Config
	ShaderDir string
	LogLevel  log.Level
}

func loadConfig() (config, error) {
	cfg := config{
		Render:    render.DefaultConfig(),
		ShaderDir: "shaders",
		LogLevel:  log.InfoLevel,
	}
	if dir := envy.Get(envShaderDir, ""); dir != "" {
		cfg.ShaderDir = dir
	}

	var err error
	if cfg.Render.UseValidationLayer, err = envBool(envValidation, cfg.Render.UseValidationLayer); err != nil {
		return cfg, err
	}
	if cfg.Render.FramePacing, err = envBool(envFramePacing, cfg.Render.FramePacing); err != nil {
		return cfg, err
	}
	if cfg.Render.RenderingResolution.Width, err = envUint32(envWidth, cfg.Render.RenderingResolution.Width); err != nil {
		return cfg, err
	}
	if cfg.Render.RenderingResolution.Height, err = envUint32(envHeight, cfg.Render.RenderingResolution.Height); err != nil {
		return cfg, err
	}

	if level := envy.Get(envLogLevel, ""); level != "" {
		if cfg.LogLevel, err = log.ParseLevel(level); err != nil {
			return cfg, errors.Wrap(err, envLogLevel)
		}
	}

	return cfg, cfg.Render.Validate()
}

func envBool(key string, fallback bool) (bool, error) {
	value := envy.Get(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, errors.Wrapf(err, "%s", key)
	}
	return parsed, nil
}

func envUint32(key string, fallback uint32) (uint32, error) {
	value := envy.Get(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return fallback, errors.Wrapf(err, "%s", key)
	}
	return uint32(parsed), nil
}
