package app

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptPlayer(t *testing.T) {
	out := &bytes.Buffer{}
	p := newPrompter(strings.NewReader("maybe\nY\nn\n"), out)

	ok, err := p.promptPlayer("Play again?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.promptPlayer("Play again?")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 3, strings.Count(out.String(), "Play again? (y/n): "))

	_, err = p.promptPlayer("Play again?")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptListLastLineWithoutNewline(t *testing.T) {
	p := newPrompter(strings.NewReader("2"), io.Discard)

	choice, err := promptList(p, []string{"a", "b"}, 1, func(s string) string { return s })
	require.NoError(t, err)
	assert.Equal(t, 2, choice)
}

func TestPromptPasswordFromPipe(t *testing.T) {
	p := newPrompter(strings.NewReader("  hunter2 \n"), io.Discard)

	pw, err := p.promptPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
}

func TestWrapLines(t *testing.T) {
	lines := wrapLines("CPU: A2 HIT AND SUNK! the fleet is taking water", 20)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 20)
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, sleep(context.Background(), 0))
}

func joinWords(lines []string) string {
	return strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
}

func TestFitLines(t *testing.T) {
	text := "CPU: A2 HIT AND SUNK! the fleet is taking water fast"

	lines := fitLines(text, 20, 2)
	require.Len(t, lines, 2)
	assert.LessOrEqual(t, len(lines[0]), 20)
	assert.Equal(t, text, joinWords(lines))

	assert.Equal(t, []string{"short"}, fitLines("short", 20, 2))
}
