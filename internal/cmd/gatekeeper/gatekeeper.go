// Package gatekeeper parses bot configuration and launches the runtime.
package gatekeeper

import (
	"context"
	"flag"

	"github.com/midnight-community/gatekeeper/internal/bot/app"
	entrypoint "github.com/midnight-community/gatekeeper/internal/platform/cmd"
)

// Config holds gatekeeper command configuration. Token, guild, and channel
// are required; startup fails without them.
type Config struct {
	Token     string `env:"GATEKEEPER_BOT_TOKEN,required"`
	GuildID   string `env:"GATEKEEPER_GUILD_ID,required"`
	ChannelID string `env:"GATEKEEPER_CHANNEL_ID,required"`
	DBPath    string `env:"GATEKEEPER_DB_PATH" envDefault:"developer_profiles.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the profile SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the bot runtime with telemetry configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGatekeeper, func(ctx context.Context) error {
		return app.Run(ctx, app.RuntimeConfig{
			Token:     cfg.Token,
			GuildID:   cfg.GuildID,
			ChannelID: cfg.ChannelID,
			DBPath:    cfg.DBPath,
		})
	})
}
