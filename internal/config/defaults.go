package config

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/quizhub.yaml
var defaultYAML []byte

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// Default returns the embedded configuration. If the embedded YAML cannot be
// decoded the hardcoded values are used instead.
func Default() Config {
	cfg := fallback()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return fallback()
	}
	return cfg
}

// DefaultGames returns the built-in game tuning.
func DefaultGames() Games {
	return Default().Games
}

func fallback() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			SendBuffer:        32,
		},
		Storage: StorageConfig{Path: "~/.quizhub/quizhub.db"},
		Auth: AuthConfig{
			Cookie:   "quizhub_session",
			TokenTTL: 30 * 24 * time.Hour,
		},
		SSH: SSHConfig{
			Addr:        ":23234",
			HostKeyPath: "~/.quizhub/ssh_host_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Library: LibraryConfig{Root: "./library"},
		Log:     LogConfig{Level: "info"},
		Games: Games{
			T2048: T2048Config{StartTiles: 2, FourChance: 0.1, TargetValue: 2048},
			Snake: SnakeConfig{
				Interval:  150 * time.Millisecond,
				GridSize:  20,
				StartX:    10,
				StartY:    10,
				FoodScore: 10,
			},
			Flappy: FlappyConfig{
				Interval: 20 * time.Millisecond,
				Field:    FieldSize{Width: 400, Height: 600},
				Bird:     FlappyBird{Width: 40, Height: 30, Gravity: 0.5, JumpVel: -10},
				Pipes: FlappyPipes{
					Width:       60,
					Gap:         150,
					Speed:       3,
					SpawnEvery:  1500 * time.Millisecond,
					MinTop:      50,
					BottomSlack: 100,
				},
			},
			Invaders: InvadersConfig{
				Interval: 50 * time.Millisecond,
				Field:    FieldSize{Width: 400, Height: 500},
				Player:   InvadersPlayer{Width: 50, Height: 30, Step: 10},
				Bullet:   InvadersBullet{Width: 5, Height: 15, Speed: 10},
				Enemies: InvadersEnemies{
					Rows: 3, Cols: 8,
					Width: 40, Height: 30,
					ColGap: 5, RowGap: 20, OffsetY: 50,
					Speed: 1, Points: 10,
				},
			},
			Memory: MemoryConfig{
				Pairs:     8,
				FlipBack:  time.Second,
				PairScore: 10,
			},
		},
	}
}
