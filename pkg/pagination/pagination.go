// Package pagination holds the page arithmetic shared by the list views.
package pagination

import "taxifleet/pkg/models"

// PerPage is the number of records on one list page.
const PerPage = 5

type Page struct {
	Number   int
	PerPage  int
	Total    int
	NumPages int
}

// ParseNumber turns the raw ?page= value into a page number. Anything that
// is not a positive integer, "last" aside, yields 1. "last" yields -1 and is
// resolved by New once the total is known.
func ParseNumber(raw string) int {
	if raw == "last" {
		return -1
	}
	n, ok := models.ParseID(raw)
	if !ok {
		return 1
	}
	return int(n)
}

// New clamps number into [1, NumPages]. An empty result set still has one
// (empty) page.
func New(number, total, perPage int) Page {
	if perPage < 1 {
		perPage = PerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}

	switch {
	case number < 0 || number > numPages:
		number = numPages
	case number == 0:
		number = 1
	}

	return Page{
		Number:   number,
		PerPage:  perPage,
		Total:    total,
		NumPages: numPages,
	}
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }
func (p Page) Limit() int  { return p.PerPage }

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) IsPaginated() bool { return p.NumPages > 1 }

func (p Page) PreviousNumber() int { return p.Number - 1 }
func (p Page) NextNumber() int     { return p.Number + 1 }
