package tui

import (
	"github.com/MKhiriev/go-vault-gate/models"
)

// gateResultMsg carries the outcome of a gate operation. The new state itself
// is read from the snapshot.
type gateResultMsg struct {
	op  string
	err error
}

type noticeMsg struct {
	notice models.Notice
}

type revealChangedMsg struct{}

type vaultLoadedMsg struct {
	err error
}

type secretSavedMsg struct {
	secret models.Secret
	err    error
}

type secretDeletedMsg struct {
	err error
}

type projectSavedMsg struct {
	err error
}

type projectDeletedMsg struct {
	err error
}

// editLoadedMsg carries the decrypted value for the edit form.
type editLoadedMsg struct {
	secret models.Secret
	value  string
	err    error
}

type revealedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type tickMsg struct{}

// clearStatusMsg clears the notice line unless a newer notice replaced it.
type clearStatusMsg struct {
	seq int
}
