// policy.go: victim selection and displacement ordering.
//
// Grounded on Pelikan's _select_candidate/_sort_candidate for the two
// policies' semantics, implemented as a hand-rolled, allocation-free
// pass over a fixed-size array rather than sort.Slice, the way a
// hot-path permutation over a handful of elements is usually written.
package cuckoo

// selectCandidate picks exactly one of the D offsets to start a
// displacement walk from, per Config.SelectPolicy.
func selectCandidate(policy Policy, off [D]uint32, slab *Slab, now uint32, r *fastrand) uint32 {
	switch policy {
	case Expire:
		selected := off[0]
		min := itemExpire(slab.slot(off[0]))
		for i := 1; i < D; i++ {
			e := itemExpire(slab.slot(off[i]))
			if e < min {
				min = e
				selected = off[i]
			}
		}
		return selected
	default: // Random
		return off[r.intn(D)]
	}
}

// orderCandidates returns a permutation of off reflecting preference
// order for displacement targets: a rotation starting at a random
// index for Random, an ascending-by-expire stable insertion sort for
// Expire (0/empty sorts first, ties keep original relative order, so
// the lowest original index wins a tie).
func orderCandidates(policy Policy, off [D]uint32, slab *Slab, r *fastrand) [D]uint32 {
	var out [D]uint32
	switch policy {
	case Expire:
		var expire [D]uint32
		for i := 0; i < D; i++ {
			expire[i] = itemExpire(slab.slot(off[i]))
			out[i] = off[i]
			j := i
			for j > 0 && expire[j] < expire[j-1] {
				expire[j-1], expire[j] = expire[j], expire[j-1]
				out[j-1], out[j] = out[j], out[j-1]
				j--
			}
		}
	default: // Random
		j := r.intn(D)
		for i := 0; i < D; i++ {
			out[i] = off[j]
			j = (j + 1) % D
		}
	}
	return out
}
