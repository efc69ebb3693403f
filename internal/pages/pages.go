package pages

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// QuickPick is one preset page selection offered before custom input
type QuickPick struct {
	Label string
	Spec  string
}

// Parse converts a page selection like "1-3,5,7" into a sorted, deduplicated
// list of page numbers within [1, pageCount]. Any malformed or out-of-range
// token rejects the whole input.
func Parse(input string, pageCount int) ([]int, error) {
	if pageCount < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("no pages specified")
	}

	seen := make(map[int]bool)
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty page entry")
		}

		if lo, hi, ok := strings.Cut(token, "-"); ok {
			start, err := parsePage(lo, pageCount)
			if err != nil {
				return nil, err
			}
			end, err := parsePage(hi, pageCount)
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("invalid range %s: start exceeds end", token)
			}
			for p := start; p <= end; p++ {
				seen[p] = true
			}
			continue
		}

		p, err := parsePage(token, pageCount)
		if err != nil {
			return nil, err
		}
		seen[p] = true
	}

	result := make([]int, 0, len(seen))
	for p := range seen {
		result = append(result, p)
	}
	sort.Ints(result)
	return result, nil
}

func parsePage(s string, pageCount int) (int, error) {
	s = strings.TrimSpace(s)
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page number: %s", s)
	}
	if p < 1 || p > pageCount {
		return 0, fmt.Errorf("page %d is out of range (document has %d pages)", p, pageCount)
	}
	return p, nil
}

// QuickPicks builds the preset selections offered for a document of the
// given size. Small documents list individual pages; larger ones offer
// leading ranges plus first and last blocks.
func QuickPicks(pageCount int) []QuickPick {
	var picks []QuickPick

	if pageCount >= 2 {
		picks = append(picks,
			QuickPick{Label: "Pages 1-2", Spec: "1-2"},
			QuickPick{Label: "Pages 1-3", Spec: "1-3"},
		)
	}
	if pageCount >= 5 {
		picks = append(picks,
			QuickPick{Label: "First 5 pages", Spec: "1-5"},
			QuickPick{Label: "Last 5 pages", Spec: fmt.Sprintf("%d-%d", pageCount-4, pageCount)},
		)
	}
	if pageCount >= 10 {
		picks = append(picks,
			QuickPick{Label: "First 10 pages", Spec: "1-10"},
			QuickPick{Label: "Last 10 pages", Spec: fmt.Sprintf("%d-%d", pageCount-9, pageCount)},
		)
	}
	if pageCount <= 5 {
		for p := 1; p <= pageCount; p++ {
			picks = append(picks, QuickPick{Label: fmt.Sprintf("Page %d", p), Spec: strconv.Itoa(p)})
		}
	}

	return picks
}
