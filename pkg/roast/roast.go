// Package roast turns alert events into spoken one-liners. Each trigger
// kind has a pool of templates with a {player} placeholder filled from
// the subject slot that fired.
package roast

import (
	"math/rand"
	"strings"

	"github.com/ragelab/go-ragemeter/pkg/dispatch"
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Placeholder replaced with the subject's display name in every template.
const Placeholder = "{player}"

var defaultPools = map[string][]string{
	"anger": {
		"Hey {player}, why so angry?",
		"Whoa, {player}, it's just a game. Relax.",
		"{player}, you're scaring the webcam.",
		"Looks like {player} is about to rage-quit.",
		"I've seen toddlers handle losing better than you, {player}.",
	},
	"sad": {
		"Aw, {player}, don't cry. You'll get 'em next time... maybe.",
		"Cheer up, {player}. It's not like you were going to win anyway.",
	},
	"surprise": {
		"What's wrong, {player}? Did you actually land a hit?",
		"That's the 'I definitely messed up' face, {player}.",
	},
	"default": {
		"You okay over there, {player}?",
		"I'm just going to pretend I didn't see that.",
	},
}

var defaultNames = map[vision.Slot]string{
	vision.SlotLeft:     "fella on the left",
	vision.SlotRight:    "fella on the right",
	vision.SlotHardware: "all you scrubs",
}

// Registry picks phrases for alerts. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	pools map[string][]string
	names map[vision.Slot]string

	// pick selects an index in [0, n); replaceable for tests.
	pick func(n int) int
}

// NewRegistry creates a registry with the built-in phrase pools.
func NewRegistry() *Registry {
	return &Registry{
		pools: defaultPools,
		names: defaultNames,
		pick:  rand.Intn,
	}
}

// ForAlert returns a phrase for the fired alert. Trigger kinds without
// their own pool (shake, yell) fall back to the default pool.
func (r *Registry) ForAlert(ev dispatch.AlertEvent) string {
	return r.Phrase(string(ev.Trigger), ev.Subject)
}

// Phrase picks a random template from the named pool and substitutes the
// subject's display name. Unknown pools use the default pool; unknown
// slots are addressed as "you".
func (r *Registry) Phrase(key string, slot vision.Slot) string {
	pool, ok := r.pools[key]
	if !ok {
		pool = r.pools["default"]
	}

	name, ok := r.names[slot]
	if !ok {
		name = "you"
	}

	template := pool[r.pick(len(pool))]
	return strings.ReplaceAll(template, Placeholder, name)
}
