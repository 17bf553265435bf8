// Package entities contains domain entities used across the application.
package entities

// Question is a single flag from the dataset: the country name is the answer
// and FlagID references the flag image.
type Question struct {
	CountryName string // correct answer shown among the options
	FlagID      string // image identifier, e.g. "fr" for assets/flags/fr.png
}
