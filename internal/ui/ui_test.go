package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/crms/internal/model"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(5, 10, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "██████████ 100%", ProgressBar(10, 10, 10))
}

func TestPanelAlignsWideRunes(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)

	out := PanelString([]string{"■ Menstruation", "x"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	w := width(lines[0])
	for _, ln := range lines {
		assert.Equal(t, w, width(ln), ln)
	}
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
}

func TestMonoTheme(t *testing.T) {
	SetTheme("mono")
	defer func() {
		SetTheme("classic")
		SetColorForcing(false, false)
	}()

	assert.Equal(t, "M", Current().Symbol(model.Menstruation))
	assert.Equal(t, "M Menstruation", TypeBadge(model.Menstruation))
	assert.True(t, strings.HasPrefix(PanelString([]string{"a"}), "+---+"))
}

func TestThemeSwitchRestoresColor(t *testing.T) {
	SetColorMode("always")
	defer SetColorMode("auto")

	SetTheme("mono")
	assert.Equal(t, "x", C(fgRed, "x"))

	SetTheme("classic")
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
}

func TestColorModeNeverSurvivesThemeSwitch(t *testing.T) {
	SetColorMode("never")
	defer SetColorMode("auto")

	SetTheme("mono")
	SetTheme("neon")
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestColorForcing(t *testing.T) {
	SetColorMode("always")
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
	SetColorMode("never")
	assert.Equal(t, "x", C(fgRed, "x"))
	SetColorMode("auto")
	// a buffer is never a terminal
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestOutputRedirect(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)
	SetColorMode("never")
	defer SetColorMode("auto")

	OK("saved")
	Fail("nope")
	Warn("careful")
	Panel([]string{"hi"})

	assert.Contains(t, out.String(), "✔ saved")
	assert.Contains(t, out.String(), "hi")
	assert.Contains(t, errOut.String(), "✖ nope")
	assert.Contains(t, errOut.String(), "! careful")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdefgh", 5))
	assert.Equal(t, "ab", Truncate("abcdefgh", 2))
}
