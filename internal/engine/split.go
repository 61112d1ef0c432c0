package engine

// SplitEvenly divides total into count integer parts whose sum is exactly
// total. Each part is base = total/count rounded down; the remainder is
// handed out one rupiah at a time starting from the first part, so no two
// parts differ by more than one and the front of the sequence absorbs the
// rounding. Downstream consumers depend on byte-identical output, so the
// remainder-to-the-front rule must not be changed to any other distribution.
//
// count <= 0 yields an empty sequence.
func SplitEvenly(total int64, count int) []int64 {
	if count <= 0 {
		return nil
	}

	n := int64(count)
	base := total / n
	remainder := total - base*n

	parts := make([]int64, count)
	for i := range parts {
		if int64(i) < remainder {
			parts[i] = base + 1
		} else {
			parts[i] = base
		}
	}
	return parts
}
