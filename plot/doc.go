// Package plot renders terminal charts of 2D datasets and trained decision
// regions. Charts are plain strings styled with lipgloss, in the spirit of a
// graph exporter: callers print them or snapshot them in tests.
package plot
