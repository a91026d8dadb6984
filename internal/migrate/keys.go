package migrate

import "github.com/rs/zerolog/log"

// keyAllocator assigns unique transaction IDs.
//
// Transaction IDs are derived from the transaction time in milliseconds.
// When an ID is in use already, the candidate is moved forward by an
// increasing amount until a free block is found.
type keyAllocator struct {
	used       map[int64]struct{}
	seq        int64
	collisions int
}

func newKeyAllocator(reserved []int64) *keyAllocator {
	used := make(map[int64]struct{}, len(reserved))
	for _, key := range reserved {
		used[key] = struct{}{}
	}

	return &keyAllocator{used: used, seq: 1}
}

// reserve returns the first key of a block of span consecutive free keys,
// starting at candidate, and marks the whole block as used.
func (k *keyAllocator) reserve(candidate, span int64) int64 {
	start := candidate
	for !k.free(start, span) {
		start = candidate + k.seq
		k.seq += span
	}

	if start != candidate {
		k.collisions++
		log.Debug().Int64("candidate", candidate).Int64("key", start).Msg("transaction key collision")
	}

	for i := range span {
		k.used[start+i] = struct{}{}
	}

	return start
}

func (k *keyAllocator) free(start, span int64) bool {
	for i := range span {
		if _, ok := k.used[start+i]; ok {
			return false
		}
	}
	return true
}
