package feed

import (
	"slices"
	"strings"

	"codal-docs-be/internal/entity"
)

// Sort orders documents newest first. Documents whose modification time is
// not resolved yet go after all others; ties are broken by id.
func Sort(docs []*entity.Document) {
	slices.SortStableFunc(docs, compare)
}

func compare(a, b *entity.Document) int {
	switch {
	case a.LastModified == nil && b.LastModified == nil:
		return strings.Compare(a.Id, b.Id)
	case a.LastModified == nil:
		return 1
	case b.LastModified == nil:
		return -1
	}
	if c := b.LastModified.Compare(*a.LastModified); c != 0 {
		return c
	}
	return strings.Compare(a.Id, b.Id)
}
