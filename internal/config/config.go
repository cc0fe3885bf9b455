// Package config loads quizhub settings from YAML. Built-in defaults are
// embedded; a user file, a .env file and QUIZHUB_* variables layer on top.
package config

import "time"

// Config is the whole application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	SSH     SSHConfig     `yaml:"ssh"`
	Library LibraryConfig `yaml:"library"`
	Log     LogConfig     `yaml:"log"`
	Games   Games         `yaml:"games"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	// SendBuffer is the per-connection outbound frame buffer for live games.
	SendBuffer int `yaml:"send_buffer"`
}

// StorageConfig points at the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures bearer token signing.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	Cookie   string        `yaml:"cookie"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// SSHConfig configures the SSH arcade.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LibraryConfig locates the PDF library.
type LibraryConfig struct {
	Root     string `yaml:"root"`
	Manifest string `yaml:"manifest"` // empty means the built-in manifest
}

// LogConfig sets the log level name understood by charmbracelet/log.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Games holds per-game tuning.
type Games struct {
	T2048    T2048Config    `yaml:"2048"`
	Snake    SnakeConfig    `yaml:"snake"`
	Flappy   FlappyConfig   `yaml:"flappy"`
	Invaders InvadersConfig `yaml:"invaders"`
	Memory   MemoryConfig   `yaml:"memory"`
}

// T2048Config tunes 2048.
type T2048Config struct {
	StartTiles  int     `yaml:"start_tiles"`
	FourChance  float64 `yaml:"four_chance"`
	TargetValue int     `yaml:"target_value"`
}

// SnakeConfig tunes Snake.
type SnakeConfig struct {
	Interval  time.Duration `yaml:"interval"`
	GridSize  int           `yaml:"grid_size"`
	StartX    int           `yaml:"start_x"`
	StartY    int           `yaml:"start_y"`
	FoodScore int           `yaml:"food_score"`
}

// FlappyConfig tunes Flappy Bird. Distances are play-field units.
type FlappyConfig struct {
	Interval time.Duration `yaml:"interval"`
	Field    FieldSize     `yaml:"field"`
	Bird     FlappyBird    `yaml:"bird"`
	Pipes    FlappyPipes   `yaml:"pipes"`
}

// FieldSize is a play-field in abstract units.
type FieldSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyBird holds the bird's size and physics.
type FlappyBird struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Gravity float64 `yaml:"gravity"`
	JumpVel float64 `yaml:"jump_velocity"`
}

// FlappyPipes holds pipe geometry and spawning.
type FlappyPipes struct {
	Width       int           `yaml:"width"`
	Gap         int           `yaml:"gap"`
	Speed       int           `yaml:"speed"`
	SpawnEvery  time.Duration `yaml:"spawn_every"`
	MinTop      int           `yaml:"min_top"`
	BottomSlack int           `yaml:"bottom_slack"`
}

// InvadersConfig tunes Space Invaders.
type InvadersConfig struct {
	Interval time.Duration   `yaml:"interval"`
	Field    FieldSize       `yaml:"field"`
	Player   InvadersPlayer  `yaml:"player"`
	Bullet   InvadersBullet  `yaml:"bullet"`
	Enemies  InvadersEnemies `yaml:"enemies"`
}

// InvadersPlayer is the player's ship.
type InvadersPlayer struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Step   int `yaml:"step"`
}

// InvadersBullet is a player shot.
type InvadersBullet struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Speed  int `yaml:"speed"`
}

// InvadersEnemies is the enemy formation. The formation must fit the
// field width with room to march.
type InvadersEnemies struct {
	Rows    int `yaml:"rows"`
	Cols    int `yaml:"cols"`
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	ColGap  int `yaml:"col_gap"`
	RowGap  int `yaml:"row_gap"`
	OffsetY int `yaml:"offset_y"`
	Speed   int `yaml:"speed"`
	Points  int `yaml:"points"`
}

// MemoryConfig tunes Memory Match.
type MemoryConfig struct {
	Pairs     int           `yaml:"pairs"`
	FlipBack  time.Duration `yaml:"flip_back"`
	PairScore int           `yaml:"pair_score"`
}
