package system

import (
	"fmt"

	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/domain/level"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

// Entity kinds accepted in level files
const (
	KindPlatform = "platform"
	KindLevel    = "level"
	KindFree     = "free"
)

// ApplyDefaults copies engine-wide entity tuning onto e
func ApplyDefaults(e *entity.Entity, cfg config.EntityConfig) {
	if cfg.Friction > 0 {
		e.FrictionX, e.FrictionY = cfg.Friction, cfg.Friction
	}
	if cfg.MaxGridMovementPercent > 0 {
		e.MaxGridMovementPercent = cfg.MaxGridMovementPercent
	}
	if cfg.RestoreSpeed > 0 {
		e.RestoreSpeed = cfg.RestoreSpeed
	}
	if _, ok := e.Collision.(*entity.PlatformCollision); ok && cfg.Gravity > 0 {
		e.GravityY = cfg.Gravity
	}
}

// SpawnPlayer creates the controllable platform entity at the level spawn
func SpawnPlayer(g *level.Grid, cfg config.EntityConfig) *entity.Entity {
	e := entity.NewPlatform("player", float64(g.CellSize), g)
	ApplyDefaults(e, cfg)
	e.SetCell(g.SpawnCX, g.SpawnCY, 0.5, 1)
	return e
}

// SpawnEntities creates the non-player entities listed in the level
func SpawnEntities(lvl *config.LevelConfig, g *level.Grid, cfg config.EntityConfig) ([]*entity.Entity, error) {
	cell := float64(g.CellSize)
	out := make([]*entity.Entity, 0, len(lvl.Entities))

	for i, spawn := range lvl.Entities {
		name := spawn.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", spawn.Kind, i)
		}

		var e *entity.Entity
		switch spawn.Kind {
		case KindPlatform:
			e = entity.NewPlatform(name, cell, g)
		case KindLevel:
			e = entity.NewLevelEntity(name, cell, g)
		case KindFree, "":
			e = entity.New(name, cell)
		default:
			return nil, fmt.Errorf("entity %s: unknown kind %q", name, spawn.Kind)
		}

		ApplyDefaults(e, cfg)
		if spawn.Width > 0 {
			e.Width = spawn.Width
		}
		if spawn.Height > 0 {
			e.Height = spawn.Height
		}
		e.SetPosition(float64(spawn.X), float64(spawn.Y))
		e.VelocityX = spawn.VelocityX
		e.VelocityY = spawn.VelocityY
		out = append(out, e)
	}

	return out, nil
}
