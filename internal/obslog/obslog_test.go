package obslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetFallsBackToNop(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	L().Info("table_create", zap.String("table_id", "t1"))
	if logs.Len() != 1 || logs.All()[0].Message != "table_create" {
		t.Fatalf("entries = %+v", logs.All())
	}

	Set(nil)
	if L() == nil {
		t.Fatalf("Set(nil) left no logger")
	}
	L().Info("dropped")
}

func TestInitFileSink(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	path := filepath.Join(t.TempDir(), "logs", "clickchess.log")
	err := Init(config.LogConfig{Level: "debug", Format: "json", ToFile: true, File: path})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	L().Debug("table_reset", zap.String("table_id", "t1"))
	_ = L().Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"table_reset"`) {
		t.Fatalf("log file = %s", data)
	}
}

func TestConsoleEncoderColor(t *testing.T) {
	encode := func(colorize bool) string {
		buf, err := newEncoder("console", colorize).EncodeEntry(zapcore.Entry{Level: zapcore.WarnLevel, Message: "x"}, nil)
		if err != nil {
			t.Fatalf("EncodeEntry: %v", err)
		}
		return buf.String()
	}
	// the file sink must never carry ANSI escapes
	if out := encode(false); strings.Contains(out, "\x1b[") {
		t.Fatalf("plain encoder emitted color: %q", out)
	}
	if out := encode(true); !strings.Contains(out, "\x1b[") {
		t.Fatalf("colored encoder emitted no color: %q", out)
	}
}
