package tui

import (
	"os"
	"path/filepath"
	"testing"

	tuitesting "github.com/Veraticus/compras/internal/tui/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Disabled(t *testing.T) {
	rec := NewRecorder("")
	assert.False(t, rec.Enabled())

	m := newTestModel(t, serviceWith(testItems()))
	rec.RecordState(m, nil)
	assert.Zero(t, rec.Frames())
	rec.Close()
}

func TestRecorder_WritesFrames(t *testing.T) {
	rec := NewRecorder(t.TempDir())
	require.True(t, rec.Enabled())
	defer rec.Close()

	m := newTestModel(t, serviceWith(testItems()))
	root := recordedModel{Model: m, rec: rec}

	renderer := tuitesting.NewTestRenderer()
	next, cmd := renderer.Update(root, root.loadItems()())
	assert.Nil(t, cmd)
	next, _ = renderer.Update(next, tuitesting.KeyPress("?"))

	_, ok := next.(recordedModel)
	require.True(t, ok)
	assert.Equal(t, 2, rec.Frames())
	assert.Contains(t, renderer.Plain(), "Atalhos")

	frame, err := os.ReadFile(filepath.Join(rec.Dir(), "frame-0002.txt"))
	require.NoError(t, err)
	assert.Contains(t, tuitesting.StripANSI(string(frame)), "Atalhos")

	log, err := os.ReadFile(filepath.Join(rec.Dir(), "tui.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "Load state: loaded")
}
