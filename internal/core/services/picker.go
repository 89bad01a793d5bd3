package services

// SeedFunc derives a stable seed from an entity identifier.
type SeedFunc func(key string) int

// seedModulus bounds stable seeds.
const seedModulus = 100000

// StableSeed is a rolling hash of the runes of key: h = (h*31 + r) mod 100000.
// The same key always yields the same seed.
func StableSeed(key string) int {
	h := 0
	for _, r := range key {
		h = (h*31 + int(r)) % seedModulus
	}
	return h
}

// maxOptions is the size of a full option set.
const maxOptions = 3

// PickOptions returns up to three unique options including correctKey,
// chosen and shuffled deterministically from seed.
//
// Distractors come from keys without correctKey. When fewer distinct keys
// are available the result shrinks, down to correctKey alone.
func PickOptions(correctKey string, keys []string, seed int) []string {
	if seed < 0 {
		seed = -seed
	}

	pool := make([]string, 0, len(keys))
	distinct := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := distinct[k]; dup {
			continue
		}
		distinct[k] = struct{}{}
		if k != correctKey {
			pool = append(pool, k)
		}
	}
	if len(pool) == 0 {
		return []string{correctKey}
	}

	n := len(pool)
	want := min(maxOptions, n+1)

	picked := []string{correctKey}
	add := func(k string) {
		for _, p := range picked {
			if p == k {
				return
			}
		}
		picked = append(picked, k)
	}
	add(pool[seed%n])
	add(pool[(seed*7+3)%n])

	// Probe with a secondary stride, then scan linearly so the loop
	// always terminates on small pools.
	for attempt := 0; len(picked) < want && attempt < n; attempt++ {
		add(pool[(seed+len(picked)*11+attempt)%n])
	}
	for i := 0; len(picked) < want && i < n; i++ {
		add(pool[i])
	}

	for i := len(picked) - 1; i > 0; i-- {
		j := (seed + i*13) % (i + 1)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked
}
