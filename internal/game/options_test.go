package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

func TestBuildOptions_FourDistinctWithCorrect(t *testing.T) {
	bank := testBank(t)
	rng := rand.New(rand.NewSource(1))

	for correct := 0; correct < bank.Len(); correct++ {
		options := buildOptions(rng, bank, correct)

		require.Len(t, options, OptionsPerQuestion)
		require.Contains(t, options, bank.At(correct).CountryName)

		seen := make(map[string]struct{}, len(options))
		for _, opt := range options {
			seen[opt] = struct{}{}
		}
		require.Len(t, seen, OptionsPerQuestion)
	}
}

func TestBuildOptions_CorrectPositionVaries(t *testing.T) {
	bank := testBank(t)
	rng := rand.New(rand.NewSource(7))

	positions := make(map[int]int)
	for i := 0; i < 400; i++ {
		options := buildOptions(rng, bank, 0)
		for pos, opt := range options {
			if opt == "France" {
				positions[pos]++
			}
		}
	}

	// Every slot gets the correct answer at some point.
	require.Len(t, positions, OptionsPerQuestion)
}

func TestBuildOptions_SmallBank(t *testing.T) {
	bank, err := NewBank([]entities.Question{
		{CountryName: "France", FlagID: "fr"},
		{CountryName: "Japan", FlagID: "jp"},
	})
	require.NoError(t, err)

	options := buildOptions(rand.New(rand.NewSource(1)), bank, 1)
	require.ElementsMatch(t, []string{"France", "Japan"}, options)

	single, err := NewBank([]entities.Question{{CountryName: "Peru", FlagID: "pe"}})
	require.NoError(t, err)
	require.Equal(t, []string{"Peru"}, buildOptions(rand.New(rand.NewSource(1)), single, 0))
}
