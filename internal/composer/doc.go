// Package composer builds the lesson video scene.
//
// Compose runs six section builders in a fixed order (background, particles,
// hook, word explanation, fun fact, outro) against a fresh scene. Every
// cosmetic random draw comes from a *rand.Rand seeded from Options.Seed and is
// bounded to a fixed range, so a given episode, palette pair and seed always
// produce the same timeline.
package composer
