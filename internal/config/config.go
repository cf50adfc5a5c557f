// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Fog      FogConfig      `yaml:"fog"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color"`

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 saves PNG frames here
}

// CameraConfig holds the free-fly camera start pose and projection.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	Speed       float32    `yaml:"speed"`       // World units per frame while a move key is held
	Sensitivity float32    `yaml:"sensitivity"` // Degrees per pixel of mouse motion
	FOV         float32    `yaml:"fov"`         // Vertical field of view, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	SkyFar      float32    `yaml:"sky_far"` // Far plane used for the skybox only
}

// LightConfig holds the directional light and the street lamp point light.
type LightConfig struct {
	Direction     [3]float32 `yaml:"direction"` // Direction towards the light
	Color         [3]float32 `yaml:"color"`
	PointPosition [3]float32 `yaml:"point_position"`
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Resolution int32   `yaml:"resolution"`
	Extent     float32 `yaml:"extent"` // Half-size of the light's orthographic box
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// FogConfig holds fog settings.
type FogConfig struct {
	Density float32 `yaml:"density"` // Density used while fog is toggled on
}

// AssetsConfig holds asset locations relative to Root.
type AssetsConfig struct {
	Root   string            `yaml:"root"`
	Models map[string]string `yaml:"models"` // Scene object name -> glTF path
	Skybox []string          `yaml:"skybox"` // Cube faces: right, left, top, bottom, back, front
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Scene object names. The scene topology is fixed; these keys select model paths.
const (
	ModelScene       = "scene"
	ModelStreetLight = "street_light"
	ModelTractor     = "tractor"
	ModelRoadTractor = "road_tractor"
	ModelBoat        = "boat"
	ModelDuck        = "duck"
	ModelGrayDog     = "gray_dog"
	ModelWhiteDog    = "white_dog"
)

// SceneModels lists the scene objects in draw order.
var SceneModels = []string{
	ModelScene,
	ModelStreetLight,
	ModelTractor,
	ModelRoadTractor,
	ModelBoat,
	ModelDuck,
	ModelGrayDog,
	ModelWhiteDog,
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1914,
			Height:     991,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [4]float32{0.7, 0.7, 0.7, 1.0},

			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Position:    [3]float32{6.41, 0.68, 5.04},
			Target:      [3]float32{6.41, 0.68, 5.06},
			Speed:       0.005,
			Sensitivity: 0.1,
			FOV:         45,
			Near:        0.1,
			Far:         20,
			SkyFar:      1000,
		},
		Light: LightConfig{
			Direction:     [3]float32{0, 1, 1},
			Color:         [3]float32{1, 1, 1},
			PointPosition: [3]float32{6.08, 0.60, 4.68},
		},
		Shadow: ShadowConfig{
			Resolution: 2048,
			Extent:     1,
			Near:       0.0001,
			Far:        500,
		},
		Fog: FogConfig{
			Density: 0.2,
		},
		Assets: AssetsConfig{
			Root: "assets",
			Models: map[string]string{
				ModelScene:       "models/scene/scene.glb",
				ModelStreetLight: "models/street_lamp/street_lamp.glb",
				ModelTractor:     "models/tractor/tractor.glb",
				ModelRoadTractor: "models/road_tractor/road_tractor.glb",
				ModelBoat:        "models/boat/boat.glb",
				ModelDuck:        "models/duck/duck.glb",
				ModelGrayDog:     "models/gray_dog/gray_dog.glb",
				ModelWhiteDog:    "models/white_dog/white_dog.glb",
			},
			Skybox: []string{
				"skybox/hills_rt.tga",
				"skybox/hills_lf.tga",
				"skybox/hills_up.tga",
				"skybox/hills_dn.tga",
				"skybox/hills_bk.tga",
				"skybox/hills_ft.tga",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
