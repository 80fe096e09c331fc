package store

import (
	"github.com/kerbaras/storyline/pkg/data"
)

// Pagination tracks the bookkeeping of one accumulated list: the envelope of
// the most recent page plus the flags the views key off.
type Pagination struct {
	Total        int
	Page         int
	NextLink     string
	PreviousLink string
	HasMore      bool
	// FirstLoaded distinguishes the blocking initial fetch from later
	// load-more fetches, which must not re-show the spinner.
	FirstLoaded bool
}

func (p *Pagination) applyLinks(links data.PageLinks, total, page int) {
	p.Total = total
	p.Page = page
	p.NextLink = ""
	p.PreviousLink = ""
	if links.Next != nil {
		p.NextLink = *links.Next
	}
	if links.Previous != nil {
		p.PreviousLink = *links.Previous
	}
	p.HasMore = links.Next != nil
	p.FirstLoaded = true
}

func (p *Pagination) reset() {
	*p = Pagination{HasMore: true}
}

// mergePage concatenates a new page onto an accumulated list, preserving
// server order and dropping entries whose id was already seen.
func mergePage[T any](existing, incoming []T, id func(T) int) []T {
	seen := make(map[int]struct{}, len(existing))
	for _, item := range existing {
		seen[id(item)] = struct{}{}
	}
	out := existing
	for _, item := range incoming {
		if _, dup := seen[id(item)]; dup {
			continue
		}
		seen[id(item)] = struct{}{}
		out = append(out, item)
	}
	return out
}
