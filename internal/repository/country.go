package repository

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

var ErrNoCountries = errors.New("no countries in dataset")

// CountryRepository provides access to the country/flag dataset.
// The dataset is loaded once and kept in memory.
type CountryRepository struct {
	countries []entities.Question
	skipped   int
}

// NewCountryRepository loads the dataset at path.
func NewCountryRepository(path string) (*CountryRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open countries file: %w", err)
	}
	defer f.Close()

	countries, skipped, err := ParseCountries(f)
	if err != nil {
		return nil, err
	}

	return &CountryRepository{
		countries: countries,
		skipped:   skipped,
	}, nil
}

// GetAll returns every well-formed row in file order.
func (r *CountryRepository) GetAll() []entities.Question {
	return r.countries
}

// Skipped returns the number of malformed rows that were dropped.
func (r *CountryRepository) Skipped() int {
	return r.skipped
}

// ParseCountries reads "country,flag" records, one per line. Rows that do not
// have exactly two non-empty comma-separated fields are skipped and counted.
// ErrNoCountries is returned when nothing usable remains.
func ParseCountries(r io.Reader) ([]entities.Question, int, error) {
	var (
		countries []entities.Question
		skipped   int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		q, ok := parseCountryLine(line)
		if !ok {
			skipped++
			continue
		}
		countries = append(countries, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read countries: %w", err)
	}

	if len(countries) == 0 {
		return nil, skipped, ErrNoCountries
	}

	return countries, skipped, nil
}

func parseCountryLine(line string) (entities.Question, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return entities.Question{}, false
	}

	name := strings.TrimSpace(parts[0])
	flag := strings.TrimSpace(parts[1])
	if name == "" || flag == "" {
		return entities.Question{}, false
	}

	return entities.Question{CountryName: name, FlagID: flag}, true
}
