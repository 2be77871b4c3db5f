package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerLine(t *testing.T) {
	assert.Equal(t, "  ⠋ Asking your coach...", stripANSI(spinnerLine(0, "Asking your coach...", 300*time.Millisecond)))
	assert.Equal(t, "  ⠙ Asking your coach... (3s)", stripANSI(spinnerLine(11, "Asking your coach...", 3200*time.Millisecond)))
}

func TestStartSpinner_StopClearsLineAndIsRepeatable(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "waiting")
	time.Sleep(3 * spinnerRate)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, stripANSI(out), "waiting")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}
