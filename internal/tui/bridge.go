// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"sync"

	"github.com/MKhiriev/go-vault-gate/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Bridge forwards events raised outside the event loop, such as the idle
// lock notice or a reveal expiring, into the running program.
//
// Events raised before the program starts are kept and delivered on attach.
// Delivery never blocks the caller, so it is safe from timer callbacks and
// from inside Update.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	pending []tea.Msg
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Notify delivers a notice to the program.
func (b *Bridge) Notify(notice models.Notice) {
	b.send(noticeMsg{notice: notice})
}

// RevealChanged tells the program that a reveal ticket appeared or expired.
func (b *Bridge) RevealChanged() {
	b.send(revealChangedMsg{})
}

func (b *Bridge) attach(program *tea.Program) {
	b.mu.Lock()
	b.program = program
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range pending {
		go program.Send(msg)
	}
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	program := b.program
	if program == nil {
		b.pending = append(b.pending, msg)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	go program.Send(msg)
}
