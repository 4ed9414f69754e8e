package tui

import "github.com/Veraticus/compras/internal/list"

// itemsLoadedMsg reports the end of a load. The controller already holds
// the result.
type itemsLoadedMsg struct {
	err error
}

// mutationDoneMsg reports the end of a create, update, toggle or delete.
type mutationDoneMsg struct {
	err error
	op  list.Op
	id  int
}

// captureDoneMsg carries a photo for the open form.
type captureDoneMsg struct {
	err   error
	image string
}

// noticeExpiredMsg hides the toast with the given sequence number.
type noticeExpiredMsg struct {
	seq int
}
