package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := Start(context.Background(), &buf, "getting media")
	p.Finish("got media")
	p.Finish("ignored")

	assert.Equal(t, "▹▹▹▹▹ getting media\n▪▪▪▪▪ got media\n", buf.String())
}

func TestProgress_StopPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := Start(context.Background(), &buf, "uploading")
	p.Stop()
	p.Finish("too late")

	assert.Equal(t, "▹▹▹▹▹ uploading\n", buf.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.False(t, IsTerminal(f))
}

func TestModel_SpinsUntilFinished(t *testing.T) {
	m := newModel("downloading", DefaultPalette())
	require.NotNil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "downloading")
	assert.Contains(t, view, Frames[0])

	next, cmd := m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	assert.NotNil(t, cmd, "tick should schedule the next frame")
	assert.Contains(t, next.View(), Frames[1])

	done, cmd := next.Update(finishMsg("saved"))
	require.NotNil(t, cmd)
	assert.Contains(t, done.View(), DoneFrame)
	assert.Contains(t, done.View(), "saved")
	assert.True(t, strings.HasSuffix(done.View(), "\n"))
}

func TestModel_EmptyFinishClearsLine(t *testing.T) {
	m := newModel("uploading", DefaultPalette())
	done, _ := m.Update(finishMsg(""))
	assert.Empty(t, done.View())
}

func TestErrorPrefix_PlainWhenNotTerminal(t *testing.T) {
	assert.Equal(t, "wistia:", ErrorPrefix(&bytes.Buffer{}, "wistia:"))
}
