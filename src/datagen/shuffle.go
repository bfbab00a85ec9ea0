package datagen

// Permute returns the elements of subset in the order of a random
// permutation drawn from s. subset itself is left untouched.
func Permute[T any](subset []T, s Sampler) []T {
	perm := s.Perm(len(subset))
	out := make([]T, len(subset))
	for i, j := range perm {
		out[i] = subset[j]
	}
	return out
}

// ShuffleSubsets permutes every subset of ps, which must be in canonical
// order, and collects the results group by group. A group is flushed when a
// subset of a different length shows up; the running length only ever grows
// by one per flush. With FlushFaithful the trailing group stays behind.
func ShuffleSubsets(ps [][]string, s Sampler, mode FlushMode) [][]string {
	shuffled := make([][]string, 0, len(ps))
	local := NewQueue[[]string]()
	prevLen := 1
	for _, p := range ps {
		if len(p) != prevLen {
			prevLen++
			shuffled = local.DrainTo(shuffled)
		}
		local.Push(Permute(p, s))
	}
	if mode == FlushCorrected {
		shuffled = local.DrainTo(shuffled)
	}
	return shuffled
}
