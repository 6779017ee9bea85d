// Package tui hosts the flappy engine in a terminal using Bubble Tea.
// It maps keys and clicks to actions, draws published snapshots, and
// feeds gate geometry back to the engine.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg reports that the driver published a new snapshot.
type FrameMsg struct{}

// ExitMsg reports that the driver processed a quit request.
type ExitMsg struct{}

// frameSource is the part of the driver the host waits on.
type frameSource interface {
	Frames() <-chan struct{}
	Exit() <-chan struct{}
}

// waitFrame blocks until the next frame or exit signal. Exit wins when
// both are pending.
func waitFrame(src frameSource) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-src.Exit():
			return ExitMsg{}
		default:
		}
		select {
		case <-src.Exit():
			return ExitMsg{}
		case <-src.Frames():
			return FrameMsg{}
		}
	}
}
