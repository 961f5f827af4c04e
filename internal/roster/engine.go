// Package roster implements the search, pagination and export logic for the
// personnel directory views.
package roster

import (
	"strings"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
)

// Filter returns the records matching the free-text query with
// case-insensitive substring semantics across name, NIP, position, grade,
// unit and rank. An empty or whitespace query returns the input unchanged.
func Filter(all []directory.Person, query string) []directory.Person {
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}

	keyword := strings.ToLower(query)
	matched := make([]directory.Person, 0, len(all))
	for _, p := range all {
		if matches(p, keyword) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matches(p directory.Person, keyword string) bool {
	for _, field := range []string{p.Nama, p.NIP, p.Jabatan, p.Golongan, p.UnitKerja, p.Pangkat} {
		if field != "" && strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// Page is one pagination view over a filtered record set.
type Page struct {
	Items      []directory.Person
	Current    int
	TotalPages int
	TotalItems int
	StartIndex int // 1-based index of the first shown item, 0 when empty
	EndIndex   int // 1-based index of the last shown item
}

// Paginate slices items into the requested page. The page number is clamped
// to [1, TotalPages]; an empty record set yields TotalPages 0 and an empty
// slice.
func Paginate(items []directory.Person, page, perPage int) Page {
	total := len(items)
	if perPage <= 0 {
		perPage = 1
	}
	totalPages := (total + perPage - 1) / perPage

	if totalPages == 0 {
		return Page{Current: 1, TotalPages: 0, TotalItems: 0}
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Current:    page,
		TotalPages: totalPages,
		TotalItems: total,
		StartIndex: start + 1,
		EndIndex:   end,
	}
}

// Window computes the compact page-number strip of at most five buttons:
// all pages when five or fewer, otherwise a window centered on the current
// page that pins to the start within the first three pages and to the end
// within the last three.
func (p Page) Window() []int {
	n := p.TotalPages
	if n == 0 {
		return nil
	}
	count := n
	if count > 5 {
		count = 5
	}

	window := make([]int, count)
	for i := 0; i < count; i++ {
		switch {
		case n <= 5:
			window[i] = i + 1
		case p.Current <= 3:
			window[i] = i + 1
		case p.Current >= n-2:
			window[i] = n - 4 + i
		default:
			window[i] = p.Current - 2 + i
		}
	}
	return window
}

// HasPrev and HasNext drive the chevron buttons.
func (p Page) HasPrev() bool { return p.Current > 1 }
func (p Page) HasNext() bool { return p.Current < p.TotalPages }
