package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alexanderramin/rapport/internal/config"
	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

// TelegramKey marks a record for delivery to telegram regardless of level.
const TelegramKey = "telegram"

// ParseLevel maps a config level name to a slog level. Unknown names are
// treated as info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Preinit installs a console logger before configuration is available.
func Preinit(w io.Writer) {
	slog.SetDefault(slog.New(console.NewHandler(w, &console.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

// New builds the application logger: console output on w, plus telegram
// for error records and records tagged with TelegramKey when a token is
// configured.
func New(w io.Writer, cfg config.Log) *slog.Logger {
	router := slogmulti.Router()

	router = router.Add(console.NewHandler(w, &console.HandlerOptions{
		AddSource: cfg.Level == "debug",
		Level:     ParseLevel(cfg.Level),
	}))

	if cfg.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelDebug,
				Token:     cfg.Telegram.Token,
				Username:  cfg.Telegram.Username,
				AddSource: true,
			}.NewTelegramHandler(),
			forTelegram,
		)
	}

	return slog.New(router.Handler())
}

// Init builds the logger and installs it as the slog default.
func Init(w io.Writer, cfg config.Log) *slog.Logger {
	logger := New(w, cfg)
	slog.SetDefault(logger)
	return logger
}

func forTelegram(_ context.Context, r slog.Record) bool {
	tagged := false
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == TelegramKey {
			tagged = true
			return false
		}
		return true
	})
	return r.Level >= slog.LevelError || tagged
}
