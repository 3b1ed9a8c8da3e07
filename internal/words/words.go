package words

import (
	"math/rand"
	"sync"
)

// Provider hands out candidate words for the drawing game.
type Provider interface {
	// Choices returns n distinct words. Fewer are returned only when the
	// vocabulary itself is smaller than n.
	Choices(n int) []string
}

// DefaultWords is the built-in vocabulary used when neither a CSV file nor a
// database is configured.
var DefaultWords = []string{
	"apple", "banana", "bridge", "camera", "candle", "castle", "cloud",
	"diamond", "dolphin", "dragon", "elephant", "fire truck", "flower",
	"guitar", "hamburger", "helicopter", "ice cream", "island", "kangaroo",
	"keyboard", "laptop", "lighthouse", "mermaid", "mountain", "mushroom",
	"octopus", "penguin", "piano", "pirate ship", "pizza", "rainbow",
	"robot", "rocket", "sandwich", "scarecrow", "snowman", "spider",
	"submarine", "sunflower", "telescope", "tornado", "treasure", "turtle",
	"umbrella", "unicorn", "volcano", "waterfall", "windmill", "wizard",
	"zebra",
}

// StaticProvider serves random choices from an in-memory word list.
type StaticProvider struct {
	mu    sync.Mutex
	words []string
}

// NewStatic builds a provider over the given list, falling back to
// DefaultWords when the list is empty.
func NewStatic(list []string) *StaticProvider {
	if len(list) == 0 {
		list = DefaultWords
	}
	return &StaticProvider{words: append([]string(nil), list...)}
}

func (p *StaticProvider) Choices(n int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.words) {
		n = len(p.words)
	}
	perm := rand.Perm(len(p.words))
	choices := make([]string, 0, n)
	for _, idx := range perm[:n] {
		choices = append(choices, p.words[idx])
	}
	return choices
}

func (p *StaticProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.words)
}
