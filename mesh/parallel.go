package mesh

import "github.com/notargets/gopic/utils"

// ParallelForBox calls f for every index of b. The box is cut into slabs
// along k (or j when the box is flat in k) and the slabs run on up to
// ParallelDegree go routines. f must only write to index (i,j,k).
func ParallelForBox(b Box, ParallelDegree int, f func(i, j, k int)) {
	if b.IsEmpty() {
		return
	}
	var (
		slabAxis = 2
	)
	if b.Length(2) == 1 {
		slabAxis = 1
	}
	utils.ParallelFor(b.Length(slabAxis), ParallelDegree, func(bucket, kMin, kMax int) {
		slab := b
		slab.Lo[slabAxis] = b.Lo[slabAxis] + kMin
		slab.Hi[slabAxis] = b.Lo[slabAxis] + kMax - 1
		slab.ForEach(f)
	})
}
