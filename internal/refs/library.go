// Package refs provides the reference library mapping hand-sign letters to
// canonical landmark sets.
package refs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ayusman/signtutor/internal/landmark"
)

// ErrNoReferenceData is returned when no canonical pose exists for the
// requested letter. Callers must surface it as an explicit state, never
// substitute another letter's data.
var ErrNoReferenceData = errors.New("no reference data")

// Library holds canonical landmark sets keyed by uppercase letter.
type Library struct {
	mu      sync.RWMutex
	letters map[string]landmark.Set
}

// New creates an empty Library.
func New() *Library {
	return &Library{
		letters: make(map[string]landmark.Set),
	}
}

// WithBuiltins creates a Library seeded with the built-in starter alphabet.
func WithBuiltins() *Library {
	l := New()
	for letter, set := range builtinLetters() {
		l.letters[letter] = set
	}
	return l
}

// Lookup returns the canonical landmark set for a single uppercase letter.
// Returns ErrNoReferenceData for unknown or malformed letters.
func (l *Library) Lookup(letter string) (landmark.Set, error) {
	if !ValidLetter(letter) {
		return nil, fmt.Errorf("%w: invalid letter %q", ErrNoReferenceData, letter)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	set, ok := l.letters[letter]
	if !ok {
		return nil, fmt.Errorf("%w: letter %q", ErrNoReferenceData, letter)
	}
	return set.Clone(), nil
}

// Put stores or replaces the canonical set for a letter.
func (l *Library) Put(letter string, set landmark.Set) error {
	if !ValidLetter(letter) {
		return fmt.Errorf("invalid letter %q", letter)
	}
	if len(set) != landmark.NumLandmarks {
		return fmt.Errorf("letter %q: got %d landmarks, want %d", letter, len(set), landmark.NumLandmarks)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.letters[letter] = set.Clone()
	return nil
}

// Remove deletes a letter's canonical set. Removing an unknown letter is a
// no-op.
func (l *Library) Remove(letter string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.letters, letter)
}

// Letters returns the known letters in alphabetical order.
func (l *Library) Letters() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.letters))
	for letter := range l.letters {
		out = append(out, letter)
	}
	sort.Strings(out)
	return out
}

// ValidLetter reports whether s is a single uppercase ASCII letter.
func ValidLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}
