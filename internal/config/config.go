// Package config handles viewer and tool configuration loading.
package config

// Config holds all application settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Model   ModelConfig   `yaml:"model"`
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds window and camera control settings.
type ViewerConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MoveSpeed     float32 `yaml:"move_speed"`   // Units per second
	RotateSpeed   float32 `yaml:"rotate_speed"` // Degrees per second
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// ModelConfig holds settings for the model being displayed.
type ModelConfig struct {
	Path        string     `yaml:"path"`
	Color       [3]float32 `yaml:"color,flow"` // Vertex color baked into the buffer
	Triangulate bool       `yaml:"triangulate"`
	Encoding    string     `yaml:"encoding"` // Code page of OBJ/MTL text, "" for UTF-8
	Texture     string     `yaml:"texture"`  // Optional texture file, overrides map_Kd
}

// ServerConfig holds the model browser settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	ModelsDir string `yaml:"models_dir"`
}

// ExportConfig holds glTF export settings.
type ExportConfig struct {
	Binary bool `yaml:"binary"` // Write .glb instead of .gltf
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MoveSpeed:     2.0,
			RotateSpeed:   90.0,
			ScreenshotDir: "screenshots",
		},
		Model: ModelConfig{
			Path:        "",
			Color:       [3]float32{0.8, 0.8, 0.8},
			Triangulate: true,
			Encoding:    "",
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8080",
			ModelsDir: "resources",
		},
		Export: ExportConfig{
			Binary: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
