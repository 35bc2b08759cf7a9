package render

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
)

func TestFormatTimestampFuncs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)

	renderer := &Renderer{
		formatter: timestamp.Default(),
		logger:    zap.New(core),
	}

	if actual := renderer.formatShort("2024-03-05T08:30:00"); actual != "5.3. 08:30" {
		t.Errorf("%q (actual) did not match %q (expected)", actual, "5.3. 08:30")
	}

	if actual := renderer.formatTooltip("garbage"); actual != timestamp.InvalidDate {
		t.Errorf("%q (actual) did not match %q (expected)", actual, timestamp.InvalidDate)
	}

	if actual := renderer.formatShort("garbage"); actual != timestamp.InvalidDate {
		t.Errorf("%q (actual) did not match %q (expected)", actual, timestamp.InvalidDate)
	}

	if logs.FilterField(zap.String("timestamp", "garbage")).Len() != 2 {
		t.Errorf("expected two warnings for the broken timestamp, got %v", logs.All())
	}
}
