package config

import (
	"errors"
	"fmt"
)

// Validate rejects game tuning that no game could start from or finish.
func (g Games) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: games."+format, args...))
		}
	}

	t := g.T2048
	check(t.StartTiles >= 0 && t.StartTiles <= 16, "2048.start_tiles must be 0..16, got %d", t.StartTiles)
	check(t.FourChance >= 0 && t.FourChance <= 1, "2048.four_chance must be 0..1, got %v", t.FourChance)
	check(t.TargetValue >= 4, "2048.target_value must be at least 4, got %d", t.TargetValue)

	s := g.Snake
	check(s.Interval > 0, "snake.interval must be positive, got %v", s.Interval)
	check(s.GridSize > 1, "snake.grid_size must be at least 2, got %d", s.GridSize)
	check(s.StartX >= 0 && s.StartX < s.GridSize && s.StartY >= 0 && s.StartY < s.GridSize,
		"snake start (%d,%d) outside a %d grid", s.StartX, s.StartY, s.GridSize)

	f := g.Flappy
	check(f.Interval > 0, "flappy.interval must be positive, got %v", f.Interval)
	check(f.Field.Width > 0 && f.Field.Height > 0, "flappy.field must be positive, got %dx%d", f.Field.Width, f.Field.Height)
	check(f.Bird.Width > 0 && f.Bird.Height > 0, "flappy.bird must be positive, got %dx%d", f.Bird.Width, f.Bird.Height)
	check(f.Pipes.Width > 0 && f.Pipes.Gap > 0, "flappy.pipes width and gap must be positive")
	check(f.Pipes.SpawnEvery > 0, "flappy.pipes.spawn_every must be positive, got %v", f.Pipes.SpawnEvery)

	inv := g.Invaders
	check(inv.Interval > 0, "invaders.interval must be positive, got %v", inv.Interval)
	check(inv.Field.Width > 0 && inv.Field.Height > 0, "invaders.field must be positive, got %dx%d", inv.Field.Width, inv.Field.Height)
	check(inv.Player.Width > 0 && inv.Player.Width <= inv.Field.Width, "invaders.player.width must fit the field, got %d", inv.Player.Width)
	check(inv.Enemies.Rows > 0 && inv.Enemies.Cols > 0,
		"invaders.enemies must have at least one row and column, got %dx%d", inv.Enemies.Rows, inv.Enemies.Cols)
	check(inv.Enemies.Width > 0 && inv.Enemies.Height > 0, "invaders.enemies size must be positive")

	m := g.Memory
	check(m.Pairs > 0, "memory.pairs must be positive, got %d", m.Pairs)
	check(m.FlipBack >= 0, "memory.flip_back must not be negative, got %v", m.FlipBack)

	return errors.Join(errs...)
}
