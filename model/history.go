package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// historySize is the number of recent states kept for cycle detection.
const historySize = 5

// Hash returns an MD5 digest of the dimensions and the packed cells.
func (g *Grid) Hash() string {
	h := md5.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(g.width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.height))
	h.Write(buf[:])
	for _, word := range g.cells.Bytes() {
		binary.LittleEndian.PutUint64(buf[:], word)
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// History remembers recent grid hashes to detect still lifes and short cycles.
type History struct {
	hashes []string
}

// Observe records hash and reports whether it matches one of the last three
// recorded states, which catches still lifes and period 2 and 3 oscillators.
func (h *History) Observe(hash string) bool {
	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Reset forgets all recorded states.
func (h *History) Reset() {
	h.hashes = nil
}
