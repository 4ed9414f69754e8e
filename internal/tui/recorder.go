package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder writes every update and the frame it produced to a directory,
// for debugging layouts that only break on a real terminal.
type Recorder struct {
	logFile  *os.File
	frameDir string
	frameNum int
	enabled  bool
}

// NewRecorder creates a recorder under dir. An empty dir or any setup
// failure yields a disabled recorder.
func NewRecorder(dir string) *Recorder {
	if dir == "" {
		return &Recorder{}
	}

	recordDir := filepath.Join(dir, fmt.Sprintf("compras-tui-%d", time.Now().Unix()))
	if err := os.MkdirAll(recordDir, 0750); err != nil {
		return &Recorder{}
	}

	logPath := filepath.Join(recordDir, "tui.log")
	logFile, err := os.Create(filepath.Clean(logPath)) // #nosec G304 -- safe constructed path
	if err != nil {
		return &Recorder{}
	}

	r := &Recorder{
		enabled:  true,
		logFile:  logFile,
		frameDir: recordDir,
	}
	r.Log("Recorder started at %s", recordDir)
	return r
}

// Enabled reports whether frames are being written.
func (r *Recorder) Enabled() bool {
	return r != nil && r.enabled
}

// Dir returns the directory frames are written to.
func (r *Recorder) Dir() string {
	return r.frameDir
}

// Frames returns how many frames were recorded.
func (r *Recorder) Frames() int {
	return r.frameNum
}

// RecordState captures the model after it handled msg.
func (r *Recorder) RecordState(m Model, msg tea.Msg) {
	if !r.Enabled() {
		return
	}

	r.frameNum++

	r.Log("\n=== Frame %d ===", r.frameNum)
	r.Log("Time: %s", time.Now().Format("15:04:05.000"))
	r.Log("Message Type: %T", msg)
	r.Log("Screen: %d", m.screen)
	r.Log("Load state: %s", m.controller.State())
	r.Log("Items: %d", len(m.controller.Items()))
	if m.toast != nil {
		r.Log("Toast: %s", m.toast.Message)
	}

	view := m.View()
	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.Log("Error saving frame: %v", err)
	}
}

// Log writes to the log file.
func (r *Recorder) Log(format string, args ...any) {
	if !r.Enabled() || r.logFile == nil {
		return
	}

	if _, err := fmt.Fprintf(r.logFile, format+"\n", args...); err != nil {
		return
	}
	_ = r.logFile.Sync()
}

// Close closes the recorder.
func (r *Recorder) Close() {
	if r == nil || r.logFile == nil {
		return
	}
	r.Log("Recording complete. %d frames captured.", r.frameNum)
	_ = r.logFile.Close()
	r.logFile = nil
}

// recordedModel records every update of the wrapped model.
type recordedModel struct {
	Model
	rec *Recorder
}

func (r recordedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.Model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		return next, cmd
	}
	r.rec.RecordState(m, msg)
	return recordedModel{Model: m, rec: r.rec}, cmd
}
