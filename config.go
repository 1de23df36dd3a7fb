package glyphspin

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/glyphspin/rt/ascii"
	"github.com/gekko3d/glyphspin/rt/geom"
)

type Config struct {
	Backend string        `yaml:"backend"`
	FPS     int           `yaml:"fps"`
	Font    FontConfig    `yaml:"font"`
	Ascii   AsciiConfig   `yaml:"ascii"`
	Spin    SpinConfig    `yaml:"spin"`
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

type FontConfig struct {
	Ref           string  `yaml:"ref"`
	Text          string  `yaml:"text"`
	Size          float32 `yaml:"size"`
	Depth         float32     `yaml:"depth"`
	CurveSegments int         `yaml:"curve_segments"`
	Bevel         BevelConfig `yaml:"bevel"`
}

type BevelConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Thickness float32 `yaml:"thickness"`
	Size      float32 `yaml:"size"`
	Segments  int     `yaml:"segments"`
}

type AsciiConfig struct {
	Charset     string  `yaml:"charset"`
	Invert      bool    `yaml:"invert"`
	Resolution  float64 `yaml:"resolution"`
	Color       bool    `yaml:"color"`
	CellAspect  float64 `yaml:"cell_aspect"`
	Supersample int     `yaml:"supersample"`
}

type SpinConfig struct {
	Sensitivity float64 `yaml:"sensitivity"`
	ReturnRate  float64 `yaml:"return_rate"`
	Epsilon     float64 `yaml:"epsilon"`
}

type SceneConfig struct {
	OffsetX    float32 `yaml:"offset_x"`
	FloatRange float32 `yaml:"float_range"`
	FloatSpeed float32 `yaml:"float_speed"`
}

type CameraConfig struct {
	Fov  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	Z    float32 `yaml:"z"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Prefix string `yaml:"prefix"`
}

func DefaultConfig() *Config {
	def := DefaultSceneDef()
	spin := DefaultSpinParams()
	opts := ascii.DefaultOptions()
	return &Config{
		Backend: string(BackendTerminal),
		FPS:     60,
		Font: FontConfig{
			Ref:           def.Glyph.FontRef,
			Text:          def.Glyph.Text,
			Size:          def.Glyph.Size,
			Depth:         def.Glyph.Depth,
			CurveSegments: def.Glyph.CurveSegments,
			Bevel: BevelConfig{
				Enabled:   true,
				Thickness: def.Glyph.Bevel.Thickness,
				Size:      def.Glyph.Bevel.Size,
				Segments:  def.Glyph.Bevel.Segments,
			},
		},
		Ascii: AsciiConfig{
			Charset:     ascii.DefaultCharset,
			Invert:      opts.Invert,
			Resolution:  opts.Resolution,
			Color:       opts.Color,
			CellAspect:  2,
			Supersample: opts.Supersample,
		},
		Spin: SpinConfig{
			Sensitivity: spin.Sensitivity,
			ReturnRate:  spin.ReturnRate,
			Epsilon:     spin.Epsilon,
		},
		Scene: SceneConfig{
			OffsetX:    def.Group.OffsetX,
			FloatRange: def.Group.FloatRange,
			FloatSpeed: def.Group.FloatSpeed,
		},
		Camera: CameraConfig{
			Fov:  def.Camera.FovY,
			Near: def.Camera.Near,
			Far:  def.Camera.Far,
			Z:    def.Camera.Position.Z(),
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "glyphspin",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "glyphspin",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch BackendName(c.Backend) {
	case BackendTerminal, BackendWindow, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Ascii.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("ascii.resolution must be positive, got %v", c.Ascii.Resolution))
	}
	if c.Ascii.Charset == "" {
		errs = append(errs, errors.New("ascii.charset must not be empty"))
	}
	if c.Font.Text == "" {
		errs = append(errs, errors.New("font.text must not be empty"))
	}
	if b := c.Font.Bevel; b.Enabled && (b.Segments < 1 || b.Thickness < 0) {
		errs = append(errs, fmt.Errorf("font.bevel needs segments >= 1 and thickness >= 0, got %d and %v", b.Segments, b.Thickness))
	}
	if r := c.Spin.ReturnRate; r <= 0 || r > 1 {
		errs = append(errs, fmt.Errorf("spin.return_rate must be in (0, 1], got %v", r))
	}
	if c.Spin.Epsilon <= 0 {
		errs = append(errs, fmt.Errorf("spin.epsilon must be positive, got %v", c.Spin.Epsilon))
	}
	if c.Spin.Sensitivity == 0 {
		errs = append(errs, errors.New("spin.sensitivity must not be zero"))
	}
	if c.Camera.Near <= 0 {
		errs = append(errs, fmt.Errorf("camera.near must be positive, got %v", c.Camera.Near))
	}
	if c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera.far must be greater than camera.near, got %v <= %v", c.Camera.Far, c.Camera.Near))
	}
	return errors.Join(errs...)
}

func (c *Config) SceneDef() SceneDef {
	def := DefaultSceneDef()
	def.Glyph = GlyphDef{
		FontRef:       c.Font.Ref,
		Text:          c.Font.Text,
		Size:          c.Font.Size,
		Depth:         c.Font.Depth,
		CurveSegments: c.Font.CurveSegments,
	}
	if c.Font.Bevel.Enabled {
		def.Glyph.Bevel = geom.Bevel{
			Thickness: c.Font.Bevel.Thickness,
			Size:      c.Font.Bevel.Size,
			Segments:  c.Font.Bevel.Segments,
		}
	}
	def.Group = GroupDef{
		OffsetX:    c.Scene.OffsetX,
		FloatRange: c.Scene.FloatRange,
		FloatSpeed: c.Scene.FloatSpeed,
	}
	def.Camera = CameraDef{
		FovY:     c.Camera.Fov,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
		Position: mgl32.Vec3{0, 0, c.Camera.Z},
	}
	return def
}

func (c *Config) SpinParams() SpinParams {
	params := DefaultSpinParams()
	params.Sensitivity = c.Spin.Sensitivity
	params.ReturnRate = c.Spin.ReturnRate
	params.Epsilon = c.Spin.Epsilon
	return params
}

func (c *Config) AsciiOptions() ascii.Options {
	return ascii.Options{
		Invert:      c.Ascii.Invert,
		Resolution:  c.Ascii.Resolution,
		Color:       c.Ascii.Color,
		CellAspect:  c.Ascii.CellAspect,
		Supersample: c.Ascii.Supersample,
	}
}

func (c *Config) RenderModule() AsciiRenderModule {
	return AsciiRenderModule{Charset: c.Ascii.Charset, Options: c.AsciiOptions()}
}
