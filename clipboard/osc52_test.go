package clipboard

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOSC52(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOSC52(&buf, "p1\tMate\t12.50", "xterm-256color", false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b]52;c;"))
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("p1\tMate\t12.50")))
}

func TestWriteOSC52Tmux(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOSC52(&buf, "x", "screen-256color", true))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1bPtmux;"))
}
