package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_TagsServiceField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Info().Msg("hello")

	line := buf.String()
	if !strings.Contains(line, `"service":"auth-system"`) {
		t.Fatalf("service field missing: %s", line)
	}
	if !strings.Contains(line, `"message":"hello"`) {
		t.Fatalf("message missing: %s", line)
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	log := Init(Options{Level: "trace", Output: &second})

	log.Info().Msg("routed")
	if second.Len() != 0 {
		t.Fatalf("second Init must not rebuild the logger: %s", second.String())
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("expected output on the first writer: %s", first.String())
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("warn") != zerolog.WarnLevel {
		t.Fatalf("warn not recognised")
	}
	if parseLevel(" ERROR ") != zerolog.ErrorLevel {
		t.Fatalf("level parsing must trim and lowercase")
	}
	if parseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatalf("unknown levels must default to info")
	}
}
