// Package ai wraps the generative-text service behind a one-method
// interface so every caller can be exercised against a scripted fake.
package ai

import "context"

// Generator produces free text from a prompt. All AI-backed services in
// this server consume exactly this shape.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
