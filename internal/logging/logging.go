package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup 建立輸出 JSON 的 slog.Logger
func Setup(w io.Writer, level slog.Leveler) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetupDefault 建立 logger 並設為全域預設，回傳同一個 logger
func SetupDefault(w io.Writer, level slog.Leveler) *slog.Logger {
	logger := Setup(w, level)
	slog.SetDefault(logger)
	return logger
}
