package services

import (
	"strings"
	"sync"
)

type ModalState string

const (
	ModalClosed ModalState = "closed"
	ModalOpen   ModalState = "open"
)

const (
	ClickTargetBackdrop = "backdrop"
	ClickTargetDialog   = "dialog"
	KeyEscape           = "Escape"
)

// NotesModal is the closed/open state machine behind a chart's "Notes" control.
// The page scroll lock is held exactly while the modal is open.
type NotesModal struct {
	mu          sync.Mutex
	state       ModalState
	description string
	lock        *ScrollLock
	release     func()
}

func NewNotesModal(description string, lock *ScrollLock) *NotesModal {
	return &NotesModal{
		state:       ModalClosed,
		description: strings.TrimSpace(description),
		lock:        lock,
	}
}

func (modal *NotesModal) State() ModalState {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	return modal.state
}

func (modal *NotesModal) IsOpen() bool {
	return modal.State() == ModalOpen
}

func (modal *NotesModal) Available() bool {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	return modal.description != ""
}

func (modal *NotesModal) Open() bool {
	modal.mu.Lock()
	defer modal.mu.Unlock()

	if modal.state == ModalOpen || modal.description == "" {
		return false
	}
	modal.state = ModalOpen
	if modal.lock != nil {
		modal.release = modal.lock.Acquire()
	}
	return true
}

func (modal *NotesModal) Close() bool {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	return modal.closeLocked()
}

func (modal *NotesModal) HandleKey(key string) bool {
	if key != KeyEscape {
		return false
	}
	return modal.Close()
}

// HandleClick closes the modal only when the click landed on the backdrop
// itself, not on something inside the dialog.
func (modal *NotesModal) HandleClick(target string) bool {
	if target != ClickTargetBackdrop {
		return false
	}
	return modal.Close()
}

// Teardown releases the scroll lock even when the owning chart disappears
// while the modal is open.
func (modal *NotesModal) Teardown() {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	modal.closeLocked()
}

func (modal *NotesModal) closeLocked() bool {
	if modal.state != ModalOpen {
		return false
	}
	modal.state = ModalClosed
	if modal.release != nil {
		modal.release()
		modal.release = nil
	}
	return true
}
