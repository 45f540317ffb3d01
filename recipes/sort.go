package recipes

import (
	"fmt"
	"sort"
	"strings"
)

type SortOption int

const (
	SortAlphabetical SortOption = iota
	SortCuisine
)

func (o SortOption) String() string {
	if o == SortCuisine {
		return "cuisine"
	}
	return "alphabetical"
}

// Next cycles to the other ordering.
func (o SortOption) Next() SortOption {
	if o == SortCuisine {
		return SortAlphabetical
	}
	return SortCuisine
}

func ParseSortOption(s string) (SortOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alphabetical", "name":
		return SortAlphabetical, nil
	case "cuisine":
		return SortCuisine, nil
	default:
		return SortAlphabetical, fmt.Errorf("invalid sort option: %s", s)
	}
}

// Sort returns a sorted copy. Alphabetical orders by name; cuisine orders by
// cuisine, then name.
func Sort(recipes []Recipe, opt SortOption) []Recipe {
	out := make([]Recipe, len(recipes))
	copy(out, recipes)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if opt == SortCuisine {
			if ca, cb := strings.ToLower(a.Cuisine), strings.ToLower(b.Cuisine); ca != cb {
				return ca < cb
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return out
}

type CuisineGroup struct {
	Cuisine string
	Recipes []Recipe
}

// GroupByCuisine groups recipes under their cuisine, groups sorted by cuisine
// and recipes within a group by name.
func GroupByCuisine(recipes []Recipe) []CuisineGroup {
	byCuisine := make(map[string][]Recipe)
	for _, r := range recipes {
		byCuisine[r.Cuisine] = append(byCuisine[r.Cuisine], r)
	}

	keys := make([]string, 0, len(byCuisine))
	for k := range byCuisine {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]CuisineGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, CuisineGroup{
			Cuisine: k,
			Recipes: Sort(byCuisine[k], SortAlphabetical),
		})
	}
	return groups
}
