package infra

import (
	"crypto/rand"
	"sync"
	"time"
)

// Push-id alphabet, in ASCII order so ids sort chronologically as strings.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// pushIDGenerator mints 20-character keys: 8 chars of millisecond timestamp
// followed by 12 chars of entropy. Two ids minted in the same millisecond
// reuse the previous entropy incremented by one, which keeps ids unique and
// strictly increasing within a process.
type pushIDGenerator struct {
	mu       sync.Mutex
	lastMs   int64
	lastRand [12]byte
}

func (g *pushIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == g.lastMs {
		for i := 11; i >= 0; i-- {
			g.lastRand[i]++
			if g.lastRand[i] < 64 {
				break
			}
			g.lastRand[i] = 0
		}
	} else {
		var buf [12]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic("pushid: entropy unavailable: " + err.Error())
		}
		for i := range buf {
			g.lastRand[i] = buf[i] % 64
		}
		g.lastMs = now
	}

	var id [20]byte
	ms := now
	for i := 7; i >= 0; i-- {
		id[i] = pushChars[ms%64]
		ms /= 64
	}
	for i, b := range g.lastRand {
		id[8+i] = pushChars[b]
	}
	return string(id[:])
}
