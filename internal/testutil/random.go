// Package testutil provides seeded random-data generators shared by this
// module's property tests, so permutation and random-int generation
// isn't hand-rolled separately in each test file.
package testutil

import "math/rand/v2"

// GenerateRandomInts generates a slice of count random integers in
// [0, maxVal), seeded deterministically from seed1/seed2 so a failing
// test reproduces the same sequence on every run.
func GenerateRandomInts(seed1, seed2 uint64, count, maxVal int) []int {
	rng := rand.New(rand.NewPCG(seed1, seed2))
	nums := make([]int, count)

	for i := range nums {
		nums[i] = rng.IntN(maxVal)
	}

	return nums
}

// GeneratePermutedInts returns a random permutation of [0, count),
// seeded deterministically from seed1/seed2.
func GeneratePermutedInts(seed1, seed2 uint64, count int) []int {
	rng := rand.New(rand.NewPCG(seed1, seed2))
	p := make([]int, count)

	for i := range p {
		p[i] = i
	}

	rng.Shuffle(count, func(i, j int) { p[i], p[j] = p[j], p[i] })

	return p
}
