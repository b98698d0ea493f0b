package utils

import (
	"errors"
	"time"
)

// DateLayout is the format of the inicio and fim query parameters
const DateLayout = "2006-01-02"

var (
	ErrHalfOpenRange = errors.New("informe inicio e fim juntos")
	ErrInvalidDate   = errors.New("data inválida, use o formato YYYY-MM-DD")
	ErrInvertedRange = errors.New("inicio deve ser anterior ou igual a fim")
)

// ValidateDateRange accepts both dates or none. Dates must be YYYY-MM-DD and
// start cannot come after end.
func ValidateDateRange(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return ErrHalfOpenRange
	}

	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return ErrInvalidDate
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return ErrInvalidDate
	}
	if from.After(to) {
		return ErrInvertedRange
	}
	return nil
}
