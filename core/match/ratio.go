package match

// Ratio returns the Ratcliff/Obershelp similarity of a and b: twice the
// number of characters in matching blocks divided by the total length.
func Ratio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}

	return 2 * float64(matchingCharacters(ar, br)) / float64(total)
}

func matchingCharacters(a, b []rune) int {
	type span struct{ alo, ahi, blo, bhi int }

	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}

		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}

	return matched
}

// longestMatch finds the longest common block of a[alo:ahi] and b[blo:bhi].
// Ties resolve to the block starting earliest in a, then earliest in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestSize int) {
	besti, bestj = alo, blo

	prev := make([]int, bhi-blo+1)
	curr := make([]int, bhi-blo+1)
	for i := alo; i < ahi; i++ {
		for j := blo; j < bhi; j++ {
			idx := j - blo + 1
			if a[i] != b[j] {
				curr[idx] = 0
				continue
			}

			curr[idx] = prev[idx-1] + 1
			if k := curr[idx]; k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		prev, curr = curr, prev
	}

	return besti, bestj, bestSize
}
