package config

// LevelConfig is the root config for level JSON files
type LevelConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        LevelSizeConfig              `json:"size"`
	Background  string                       `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Entities    []EntitySpawnConfig          `json:"entities"`
}

type LevelSizeConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

// PositionConfig is a pixel position
type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type   string `json:"type"`
	Solid  bool   `json:"solid"`
	Damage int    `json:"damage,omitempty"`
}

// EntitySpawnConfig places a non-player entity, in pixels
type EntitySpawnConfig struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"` // "platform", "level" or "free"
	X         int     `json:"x"`
	Y         int     `json:"y"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}
