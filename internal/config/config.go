package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Arena   ArenaConfig
	Discord DiscordConfig
	Redis   RedisConfig
	DND5E   DND5EConfig
	HTTP    HTTPConfig
	Log     LogConfig
}

// ArenaConfig holds match setup and pacing
type ArenaConfig struct {
	Monsters       int
	Players        []PlayerConfig
	AttackPace     time.Duration
	RevealMonsters bool
	// Seed fixes the dice when non-zero
	Seed int64
}

// PlayerConfig is a display name plus a class name or selection index
type PlayerConfig struct {
	Name  string
	Class string
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string
	AppID   string
	GuildID string // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Timeout      time.Duration
	MonsterNames bool
}

// HTTPConfig holds the spectator API listener
type HTTPConfig struct {
	Addr string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
	Dev        bool
}

var envKeys = map[string]string{
	"arena.monsters":        "ARENA_MONSTERS",
	"arena.players":         "ARENA_PLAYERS",
	"arena.attack_pace":     "ARENA_ATTACK_PACE",
	"arena.reveal_monsters": "ARENA_REVEAL_MONSTERS",
	"arena.seed":            "ARENA_SEED",
	"discord.token":         "DISCORD_TOKEN",
	"discord.app_id":        "DISCORD_APP_ID",
	"discord.guild_id":      "DISCORD_GUILD_ID",
	"redis.url":             "REDIS_URL",
	"dnd5e.timeout":         "DND5E_TIMEOUT",
	"dnd5e.monster_names":   "DND5E_MONSTER_NAMES",
	"http.addr":             "HTTP_ADDR",
	"log.level":             "LOG_LEVEL",
	"log.file":              "LOG_FILE",
	"log.max_size":          "LOG_MAX_SIZE",
	"log.max_backups":       "LOG_MAX_BACKUPS",
	"log.max_age":           "LOG_MAX_AGE",
	"log.compress":          "LOG_COMPRESS",
	"log.dev":               "LOG_DEV",
}

var flagKeys = map[string]string{
	"monsters":        "arena.monsters",
	"player":          "arena.players",
	"pace":            "arena.attack_pace",
	"reveal-monsters": "arena.reveal_monsters",
	"seed":            "arena.seed",
	"log-level":       "log.level",
	"log-file":        "log.file",
	"http-addr":       "http.addr",
}

// AddFlags registers the command line flags understood by Load
func AddFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "optional config file (yaml, toml or json)")
	fs.Int("monsters", 4, "number of monsters hidden in the arena")
	fs.StringArray("player", nil, "player as name:class, repeat four times")
	fs.Duration("pace", time.Second, "delay between sub-attacks")
	fs.Bool("reveal-monsters", false, "show monster icons on the grid")
	fs.Int64("seed", 0, "fix the dice seed (0 for random)")
	fs.String("log-level", "info", "log level")
	fs.String("log-file", "", "rotate JSON logs into this file")
	fs.String("http-addr", "", "spectator API listen address")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("arena.monsters", 4)
	v.SetDefault("arena.players", []string{
		"Player 1:barbarian",
		"Player 2:fighter",
		"Player 3:paladin",
		"Player 4:sorcerer",
	})
	v.SetDefault("arena.attack_pace", time.Second)
	v.SetDefault("dnd5e.timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// Load loads configuration from defaults, an optional config file, environment
// variables and flags, in increasing order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	players, err := ParsePlayers(stringList(v.Get("arena.players")))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Arena: ArenaConfig{
			Monsters:       v.GetInt("arena.monsters"),
			Players:        players,
			AttackPace:     v.GetDuration("arena.attack_pace"),
			RevealMonsters: v.GetBool("arena.reveal_monsters"),
			Seed:           v.GetInt64("arena.seed"),
		},
		Discord: DiscordConfig{
			Token:   v.GetString("discord.token"),
			AppID:   v.GetString("discord.app_id"),
			GuildID: v.GetString("discord.guild_id"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
		},
		DND5E: DND5EConfig{
			Timeout:      v.GetDuration("dnd5e.timeout"),
			MonsterNames: v.GetBool("dnd5e.monster_names"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("http.addr"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSize:    v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age"),
			Compress:   v.GetBool("log.compress"),
			Dev:        v.GetBool("log.dev"),
		},
	}

	if cfg.Arena.Monsters < 0 {
		return nil, fmt.Errorf("monster count cannot be negative: %d", cfg.Arena.Monsters)
	}
	if cfg.Arena.AttackPace < 0 {
		return nil, fmt.Errorf("attack pace cannot be negative: %s", cfg.Arena.AttackPace)
	}

	return cfg, nil
}

// ValidateDiscord checks the fields the Discord bot cannot run without
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}

// ParsePlayers parses four name:class entries
func ParsePlayers(entries []string) ([]PlayerConfig, error) {
	if len(entries) != 4 {
		return nil, fmt.Errorf("exactly 4 players are required, got %d", len(entries))
	}

	players := make([]PlayerConfig, 0, len(entries))
	for _, entry := range entries {
		name, class, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		class = strings.TrimSpace(class)
		if !ok || name == "" || class == "" {
			return nil, fmt.Errorf("invalid player %q, expected name:class", entry)
		}
		players = append(players, PlayerConfig{Name: name, Class: class})
	}
	return players, nil
}

// stringList accepts both list values (defaults, flags, config files) and the
// comma separated form used in environment variables.
func stringList(raw any) []string {
	switch val := raw.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if val == "" {
			return nil
		}
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}
