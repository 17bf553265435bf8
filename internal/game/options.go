package game

import (
	"math/rand"
	"slices"
)

// OptionsPerQuestion is the number of answer choices shown for a flag.
const OptionsPerQuestion = 4

// buildOptions returns the answer choices for the question at index correct:
// the correct country name plus up to three distinct distractors drawn without
// replacement, with the correct name at a uniformly random position.
func buildOptions(rng *rand.Rand, bank *Bank, correct int) []string {
	candidates := make([]string, 0, bank.Len()-1)
	for i := 0; i < bank.Len(); i++ {
		if i != correct {
			candidates = append(candidates, bank.At(i).CountryName)
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	wrong := min(OptionsPerQuestion-1, len(candidates))
	options := make([]string, 0, wrong+1)
	options = append(options, candidates[:wrong]...)

	// Randomly place the correct answer.
	pos := rng.Intn(wrong + 1)
	return slices.Insert(options, pos, bank.At(correct).CountryName)
}
