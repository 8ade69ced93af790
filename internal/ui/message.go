package ui

import (
	"sync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lttslabs/etlctl/internal/session"
)

// noticeMsg carries a user-visible error emitted by the API client's
// notification channel.
type noticeMsg string

// loginResultMsg reports the outcome of a credential exchange.
type loginResultMsg struct {
	result *session.LoginResult
	err    error
}

// pageLoadedMsg delivers the items for one console page.
type pageLoadedMsg struct {
	path  string
	title string
	items []list.Item
	err   error
}

// missionTriggeredMsg reports a manual run started from the mission list.
type missionTriggeredMsg struct {
	name   string
	record string
	err    error
}

// Notifier bridges [api.Notifier] into the running bubbletea program. It is
// safe to call from any goroutine; notifications sent before Attach are
// dropped.
type Notifier struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach binds the notifier to a running program.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
}

// Error implements the API client's notification channel.
func (n *Notifier) Error(message string) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p != nil {
		p.Send(noticeMsg(message))
	}
}
