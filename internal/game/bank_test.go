package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

func TestNewBank_Empty(t *testing.T) {
	_, err := NewBank(nil)
	require.ErrorIs(t, err, ErrEmptyBank)

	_, err = NewBank([]entities.Question{{CountryName: "", FlagID: "xx"}})
	require.ErrorIs(t, err, ErrEmptyBank)
}

func TestNewBank_DropsDuplicateNames(t *testing.T) {
	bank, err := NewBank([]entities.Question{
		{CountryName: "France", FlagID: "fr"},
		{CountryName: "Japan", FlagID: "jp"},
		{CountryName: "France", FlagID: "fr2"},
	})
	require.NoError(t, err)

	require.Equal(t, 2, bank.Len())
	require.Equal(t, entities.Question{CountryName: "France", FlagID: "fr"}, bank.At(0))
	require.Equal(t, "Japan", bank.At(1).CountryName)
}

func TestBank_QuestionsReturnsCopy(t *testing.T) {
	bank := testBank(t)

	qs := bank.Questions()
	qs[0].CountryName = "Atlantis"

	require.Equal(t, "France", bank.At(0).CountryName)
}
