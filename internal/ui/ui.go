// Package ui declares the external UI collaborators the cart engine talks
// to: toast notifications and blocking confirmation prompts. The engine
// consumes these interfaces, it never renders anything itself.
package ui

import "github.com/rs/zerolog"

// Notifier surfaces dismissible user notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

// Confirmer blocks for an explicit user confirmation before destructive
// actions such as removing a cart item.
type Confirmer interface {
	Confirm(prompt string) bool
}

// LogNotifier writes notifications to the structured log. It is the default
// when no rendering layer is attached.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Success logs a success notification.
func (n LogNotifier) Success(message string) {
	n.Logger.Info().Str("toast", "success").Msg(message)
}

// Error logs an error notification.
func (n LogNotifier) Error(message string) {
	n.Logger.Error().Str("toast", "error").Msg(message)
}

// Warning logs a warning notification.
func (n LogNotifier) Warning(message string) {
	n.Logger.Warn().Str("toast", "warning").Msg(message)
}

// Info logs an informational notification.
func (n LogNotifier) Info(message string) {
	n.Logger.Info().Str("toast", "info").Msg(message)
}

// StaticConfirmer answers every prompt with a fixed decision. Useful for
// headless runs and tests.
type StaticConfirmer struct {
	Answer bool
}

// Confirm returns the configured answer regardless of the prompt.
func (c StaticConfirmer) Confirm(string) bool { return c.Answer }
