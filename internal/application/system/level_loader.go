package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/gridsim/internal/domain/level"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

// ErrBadTileSize is returned for a level whose tile size is not positive
var ErrBadTileSize = errors.New("tile size must be positive")

// LoadLevel converts a LevelConfig into a grid and derives its marks
func LoadLevel(cfg *config.LevelConfig) (*level.Grid, error) {
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("level %s: %w", cfg.ID, ErrBadTileSize)
	}

	// rows longer than the declared width are cut; no width means the widest row
	width := cfg.Size.Width / cfg.Size.TileSize
	if width == 0 {
		for _, row := range cfg.Layers.Collision {
			width = max(width, len([]rune(row)))
		}
	}
	height := len(cfg.Layers.Collision)

	g := level.New(width, height, cfg.Size.TileSize)
	for y, row := range cfg.Layers.Collision {
		for x, char := range []rune(row) {
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}
			g.SetCell(x, y, level.Cell{
				Type:   level.ParseCellType(mapping.Type),
				Solid:  mapping.Solid,
				Damage: mapping.Damage,
			})
		}
	}

	g.SpawnCX = cfg.PlayerSpawn.X / cfg.Size.TileSize
	g.SpawnCY = cfg.PlayerSpawn.Y / cfg.Size.TileSize
	g.BuildMarks()

	return g, nil
}
