package ghost

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the reserved node names and defaults of a Session.
//
// Values are read from GHOST_* environment variables by LoadConfigFromEnv;
// zero fields of a literal Config fall back to DefaultConfig.
type Config struct {
	RenderNode       string  `env:"GHOST_RENDER_NODE"       envDefault:"ghost_Node"`
	Container        string  `env:"GHOST_CONTAINER"         envDefault:"ghost_Group"`
	Timeline         string  `env:"GHOST_TIMELINE"          envDefault:"ghost_Position"`
	Layer            string  `env:"GHOST_LAYER"             envDefault:"Ghost_Layer"`
	DefaultCharacter string  `env:"GHOST_DEFAULT_CHARACTER" envDefault:"untitled"`
	Increment        int     `env:"GHOST_INCREMENT"         envDefault:"4"`
	LineWidth        float64 `env:"GHOST_LINE_WIDTH"        envDefault:"1"`
	Debug            bool    `env:"GHOST_DEBUG"             envDefault:"false"`
	CaptureOnCreate  bool    `env:"GHOST_CAPTURE_ON_CREATE" envDefault:"false"` // capture the frame of every new ghost
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		RenderNode:       "ghost_Node",
		Container:        "ghost_Group",
		Timeline:         "ghost_Position",
		Layer:            "Ghost_Layer",
		DefaultCharacter: "untitled",
		Increment:        4,
		LineWidth:        1,
	}
}

// LoadConfigFromEnv loads configuration from environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RenderNode == "" {
		c.RenderNode = d.RenderNode
	}
	if c.Container == "" {
		c.Container = d.Container
	}
	if c.Timeline == "" {
		c.Timeline = d.Timeline
	}
	if c.Layer == "" {
		c.Layer = d.Layer
	}
	if c.DefaultCharacter == "" {
		c.DefaultCharacter = d.DefaultCharacter
	}
	if c.Increment <= 0 {
		c.Increment = d.Increment
	}
	if c.LineWidth <= 0 {
		c.LineWidth = d.LineWidth
	}
	return c
}

// renderShape is the name of the render node's shape.
func (c Config) renderShape() string {
	return c.RenderNode + "Shape"
}
