package game

// Flags is the narrative flag store: named boolean facts about quest and
// world progress. It is the single source of narrative truth for a room,
// owned by the simulation loop's goroutine; reading an absent key yields
// false, never an error. It satisfies dialogue.FlagStore.
type Flags struct {
	m map[string]bool
}

// NewFlags returns an empty flag store.
func NewFlags() *Flags {
	return &Flags{m: make(map[string]bool)}
}

// Has reports whether the flag is set. Absent flags read as false.
func (f *Flags) Has(key string) bool {
	return f.m[key]
}

// Set writes the flag, inserting or overwriting.
func (f *Flags) Set(key string, value bool) {
	f.m[key] = value
}

// Snapshot returns a copy of the current flag map for serialization.
func (f *Flags) Snapshot() map[string]bool {
	out := make(map[string]bool, len(f.m))
	for k, v := range f.m {
		out[k] = v
	}
	return out
}
