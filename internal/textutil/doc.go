// Package textutil provides small text helpers shared by the scaffolder and
// the renderer: filesystem-safe names and title casing of identifiers.
package textutil
