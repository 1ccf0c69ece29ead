package bot

import (
	"math/rand"
	"sync"
)

// botRng is the package-level random source used by all bot strategies.
// When nil, the functions below delegate to the global math/rand default.
// Use SeedBotRng to set a deterministic source for reproducible matches.
var (
	botMu  sync.Mutex
	botRng *rand.Rand
)

// SeedBotRng sets a deterministic random source for reproducible bot behavior.
func SeedBotRng(seed int64) {
	botMu.Lock()
	botRng = rand.New(rand.NewSource(seed))
	botMu.Unlock()
}

// ResetBotRng reverts to the default (non-deterministic) global random source.
func ResetBotRng() {
	botMu.Lock()
	botRng = nil
	botMu.Unlock()
}

func botFloat64() float64 {
	botMu.Lock()
	defer botMu.Unlock()
	if botRng != nil {
		return botRng.Float64()
	}
	return rand.Float64()
}

func botIntn(n int) int {
	botMu.Lock()
	defer botMu.Unlock()
	if botRng != nil {
		return botRng.Intn(n)
	}
	return rand.Intn(n)
}

func botInt63() int64 {
	botMu.Lock()
	defer botMu.Unlock()
	if botRng != nil {
		return botRng.Int63()
	}
	return rand.Int63()
}

// pick returns a uniformly chosen element of xs. xs must not be empty.
func pick[T any](xs []T) T {
	return xs[botIntn(len(xs))]
}
