// Copyright (c) 2014 Utkan Güngördü <utkan@freeconsole.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cuckoo

// Slab owns the table's single contiguous allocation: chunkSize *
// maxItem bytes, sliced into maxItem fixed-size slots. It is the only
// storage items are written to; no per-item allocation happens after
// Setup. A slot is an opaque byte region addressed by a computed
// offset rather than a fixed Go struct overlay, so no unsafe pointer
// cast is needed to get at it.
type Slab struct {
	data      []byte
	chunkSize uint32
	maxItem   uint32
}

// newSlab allocates a zeroed slab of maxItem slots, chunkSize bytes
// each.
func newSlab(chunkSize, maxItem uint32) *Slab {
	return &Slab{
		data:      make([]byte, uint64(chunkSize)*uint64(maxItem)),
		chunkSize: chunkSize,
		maxItem:   maxItem,
	}
}

// slot returns the byte region backing slot index i. The returned
// slice aliases the slab; it is a borrow, valid only until the next
// mutating call on the engine that owns this slab.
func (s *Slab) slot(i uint32) []byte {
	off := uint64(i) * uint64(s.chunkSize)
	return s.data[off : off+uint64(s.chunkSize)]
}

// reset zeroes the slab in place, invalidating every slot (expire
// becomes 0 for all of them).
func (s *Slab) reset() {
	for i := range s.data {
		s.data[i] = 0
	}
}

// copySlot overwrites slot dst with the full bytes of slot src. Used
// by the displacement walk to move an occupant to its next candidate
// location.
func (s *Slab) copySlot(dst, src uint32) {
	copy(s.slot(dst), s.slot(src))
}
