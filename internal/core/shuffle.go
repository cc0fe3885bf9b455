package core

import "math/rand"

// Shuffle permutes s in place with the Fisher-Yates algorithm. Every
// permutation is equally likely given a uniform rng.
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
