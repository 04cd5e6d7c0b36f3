package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gridsim/internal/domain/level"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

func levelConfig(rows ...string) *config.LevelConfig {
	return &config.LevelConfig{
		ID:   "test",
		Size: config.LevelSizeConfig{TileSize: 16},
		Layers: config.LayersConfig{
			Collision: rows,
		},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "wall", Solid: true},
			"^": {Type: "spike", Solid: false, Damage: 10},
			".": {Type: "empty", Solid: false},
			"X": {Type: "unknown_type", Solid: false},
		},
	}
}

func TestLoadLevel(t *testing.T) {
	t.Run("loads basic level", func(t *testing.T) {
		cfg := levelConfig("###", "#.#", "###")
		cfg.Size.Width = 48
		cfg.PlayerSpawn = config.PositionConfig{X: 24, Y: 31}

		g, err := LoadLevel(cfg)

		require.NoError(t, err)
		assert.Equal(t, 3, g.Width)
		assert.Equal(t, 3, g.Height)
		assert.Equal(t, 16, g.CellSize)
		assert.Equal(t, 1, g.SpawnCX)
		assert.Equal(t, 1, g.SpawnCY)
	})

	t.Run("maps wall cells", func(t *testing.T) {
		g, err := LoadLevel(levelConfig("##", "##"))
		require.NoError(t, err)

		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				c := g.Cell(x, y)
				assert.Equal(t, level.CellWall, c.Type)
				assert.True(t, c.Solid)
				assert.True(t, g.HasCollision(x, y))
			}
		}
	})

	t.Run("maps spike cells with damage", func(t *testing.T) {
		g, err := LoadLevel(levelConfig("^"))
		require.NoError(t, err)

		c := g.Cell(0, 0)
		assert.Equal(t, level.CellSpike, c.Type)
		assert.False(t, c.Solid)
		assert.Equal(t, 10, c.Damage)
		assert.False(t, g.HasCollision(0, 0))
	})

	t.Run("unmapped and unknown cells are empty", func(t *testing.T) {
		g, err := LoadLevel(levelConfig("?X"))
		require.NoError(t, err)

		assert.Equal(t, level.CellEmpty, g.Cell(0, 0).Type)
		assert.Equal(t, level.CellEmpty, g.Cell(1, 0).Type)
		assert.False(t, g.HasCollision(1, 0))
	})

	t.Run("cuts rows longer than width", func(t *testing.T) {
		cfg := levelConfig("####")
		cfg.Size.Width = 32

		g, err := LoadLevel(cfg)
		require.NoError(t, err)

		assert.Equal(t, 2, g.Width)
		assert.Equal(t, 1, g.Height)
	})

	t.Run("width defaults to widest row", func(t *testing.T) {
		g, err := LoadLevel(levelConfig("#", "####", "##"))
		require.NoError(t, err)

		assert.Equal(t, 4, g.Width)
		assert.False(t, g.HasCollision(3, 2))
	})

	t.Run("rejects zero tile size", func(t *testing.T) {
		cfg := levelConfig("#")
		cfg.Size.TileSize = 0

		_, err := LoadLevel(cfg)
		assert.ErrorIs(t, err, ErrBadTileSize)
	})

	t.Run("builds marks", func(t *testing.T) {
		g, err := LoadLevel(levelConfig(
			"......",
			"......",
			".###..",
			"######",
		))
		require.NoError(t, err)

		assert.True(t, g.HasMarkDir(1, 1, level.MarkPlatformEnd, -1))
		assert.True(t, g.HasMarkDir(3, 1, level.MarkPlatformEnd, 1))
	})
}
