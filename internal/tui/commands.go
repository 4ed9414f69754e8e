package tui

import (
	"time"

	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// loadItems fetches the collection.
func (m Model) loadItems() tea.Cmd {
	ctx := m.ctx
	c := m.controller
	return func() tea.Msg {
		return itemsLoadedMsg{err: c.Load(ctx)}
	}
}

// submitIntent sends a validated form to the catalog.
func (m Model) submitIntent(intent editor.Intent) tea.Cmd {
	ctx := m.ctx
	c := m.controller
	if intent.Kind == editor.IntentCreate {
		return func() tea.Msg {
			created, err := c.Create(ctx, intent.Create)
			return mutationDoneMsg{op: list.OpCreate, id: created.ID, err: err}
		}
	}
	return func() tea.Msg {
		err := c.Update(ctx, intent.ID, intent.Update)
		return mutationDoneMsg{op: list.OpUpdate, id: intent.ID, err: err}
	}
}

// toggleItem flips the purchased flag of id.
func (m Model) toggleItem(id int) tea.Cmd {
	ctx := m.ctx
	c := m.controller
	return func() tea.Msg {
		return mutationDoneMsg{op: list.OpToggle, id: id, err: c.Toggle(ctx, id)}
	}
}

// deleteItem removes id.
func (m Model) deleteItem(id int) tea.Cmd {
	ctx := m.ctx
	c := m.controller
	return func() tea.Msg {
		return mutationDoneMsg{op: list.OpDelete, id: id, err: c.Delete(ctx, id)}
	}
}

// capture runs the capturer matching the form's request.
func (m Model) capture(req components.CaptureRequestMsg) tea.Cmd {
	ctx := m.ctx
	var capturer media.Capturer
	switch req.Method {
	case editor.ImageFromCamera:
		capturer = m.config.Camera
		if capturer == nil {
			capturer = media.CommandCapturer{}
		}
	default:
		capturer = media.FileCapturer{Path: req.Path}
	}
	return func() tea.Msg {
		image, err := capturer.Capture(ctx)
		return captureDoneMsg{image: image, err: err}
	}
}

// expireNotice hides toast seq after d.
func expireNotice(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
