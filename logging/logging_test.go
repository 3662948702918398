package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inconshreveable/log15/v3"
)

func TestSetupWriter(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "info level drops debug", debug: false, wantDebug: false},
		{name: "debug level keeps debug", debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupWriter(&buf, tt.debug)
			defer Discard()

			logger := log15.New("module", "test")
			logger.Debug("quiet")
			logger.Info("loud", "piece", 3)

			out := buf.String()
			if !strings.Contains(out, "msg=loud") || !strings.Contains(out, "piece=3") || !strings.Contains(out, "module=test") {
				t.Errorf("Expected info record in output, got %q", out)
			}
			if got := strings.Contains(out, "msg=quiet"); got != tt.wantDebug {
				t.Errorf("Debug record present = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, true)
	Discard()

	log15.New().Error("nobody hears this")
	if buf.Len() != 0 {
		t.Errorf("Expected no output after Discard, got %q", buf.String())
	}
}
