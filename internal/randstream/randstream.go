// Package randstream derives independent, reproducible random sub-streams
// from a single run seed. Each sub-stream is keyed by a purpose label
// ("task.due_date", "user.role", ...) so changing how one distribution
// consumes randomness never perturbs draws made by unrelated samplers.
package randstream

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

type Provider struct {
	seed   int64
	issued map[string]bool
}

func NewProvider(seed int64) *Provider {
	return &Provider{seed: seed, issued: map[string]bool{}}
}

func (p *Provider) Seed() int64 { return p.seed }

// Stream hands out the sub-stream for a purpose. Each purpose may be
// requested once per run; a second request indicates two call sites sharing
// one stream, which would silently break sub-stream independence, so it
// panics the way flag redefinition does.
func (p *Provider) Stream(purpose string) *rand.Rand {
	if p.issued[purpose] {
		panic(fmt.Sprintf("randstream: stream %q already issued", purpose))
	}
	p.issued[purpose] = true
	return rand.New(rand.NewChaCha8(p.derive(purpose)))
}

// derive hashes seed and label into a ChaCha8 key. The label goes through
// the hash whole, so "a.bc" and "ab.c" produce unrelated streams.
func (p *Provider) derive(purpose string) [32]byte {
	h := sha256.New()
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], uint64(p.seed))
	h.Write(seedBytes[:])
	h.Write([]byte(purpose))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
