package tui

import "fetchbites/recipes"

type listRow struct {
	Header string
	Recipe recipes.Recipe
}

func (r listRow) IsHeader() bool {
	return r.Header != ""
}

// RecipeList is the scrollable list of recipes. In cuisine order it
// interleaves a header row before each cuisine; the selection always sits on
// a recipe row.
type RecipeList struct {
	recipes  []recipes.Recipe
	rows     []listRow
	sort     recipes.SortOption
	selected int
	offset   int
}

func NewRecipeList(opt recipes.SortOption) *RecipeList {
	return &RecipeList{sort: opt}
}

func (rl *RecipeList) SetRecipes(list []recipes.Recipe) {
	rl.recipes = list
	rl.rebuild("")
}

func (rl *RecipeList) SortOption() recipes.SortOption {
	return rl.sort
}

// SetSort reorders the list and keeps the selected recipe selected.
func (rl *RecipeList) SetSort(opt recipes.SortOption) {
	keep := ""
	if r := rl.Selected(); r != nil {
		keep = r.ID
	}
	rl.sort = opt
	rl.rebuild(keep)
}

func (rl *RecipeList) rebuild(keepID string) {
	rl.rows = nil
	if rl.sort == recipes.SortCuisine {
		for _, g := range recipes.GroupByCuisine(rl.recipes) {
			rl.rows = append(rl.rows, listRow{Header: g.Cuisine})
			for _, r := range g.Recipes {
				rl.rows = append(rl.rows, listRow{Recipe: r})
			}
		}
	} else {
		for _, r := range recipes.Sort(rl.recipes, recipes.SortAlphabetical) {
			rl.rows = append(rl.rows, listRow{Recipe: r})
		}
	}

	rl.selected, rl.offset = 0, 0
	first := -1
	for i, row := range rl.rows {
		if row.IsHeader() {
			continue
		}
		if first < 0 {
			first = i
		}
		if keepID != "" && row.Recipe.ID == keepID {
			rl.selected = i
			return
		}
	}
	if first >= 0 {
		rl.selected = first
	}
}

func (rl *RecipeList) Rows() []listRow {
	return rl.rows
}

func (rl *RecipeList) Len() int {
	return len(rl.recipes)
}

func (rl *RecipeList) SelectedIndex() int {
	return rl.selected
}

func (rl *RecipeList) Selected() *recipes.Recipe {
	if rl.selected < 0 || rl.selected >= len(rl.rows) || rl.rows[rl.selected].IsHeader() {
		return nil
	}
	r := rl.rows[rl.selected].Recipe
	return &r
}

// Position is the 1-based index of the selected recipe among recipes.
func (rl *RecipeList) Position() int {
	n := 0
	for i := 0; i <= rl.selected && i < len(rl.rows); i++ {
		if !rl.rows[i].IsHeader() {
			n++
		}
	}
	return n
}

func (rl *RecipeList) MoveUp() {
	for i := rl.selected - 1; i >= 0; i-- {
		if !rl.rows[i].IsHeader() {
			rl.selected = i
			return
		}
	}
}

func (rl *RecipeList) MoveDown() {
	for i := rl.selected + 1; i < len(rl.rows); i++ {
		if !rl.rows[i].IsHeader() {
			rl.selected = i
			return
		}
	}
}

func (rl *RecipeList) PageUp(n int) {
	for i := 0; i < n; i++ {
		rl.MoveUp()
	}
}

func (rl *RecipeList) PageDown(n int) {
	for i := 0; i < n; i++ {
		rl.MoveDown()
	}
}

// Scroll moves the window of height rows so the selection is visible,
// pulling in the cuisine header right above it when there is room.
func (rl *RecipeList) Scroll(height int) {
	if height < 1 {
		height = 1
	}
	top := rl.selected
	if top > 0 && rl.rows[top-1].IsHeader() {
		top--
	}
	if top < rl.offset {
		rl.offset = top
	}
	if rl.selected >= rl.offset+height {
		rl.offset = rl.selected - height + 1
	}
	if maxOffset := len(rl.rows) - height; rl.offset > maxOffset {
		rl.offset = max(maxOffset, 0)
	}
}

// Window returns the bounds of the visible rows.
func (rl *RecipeList) Window(height int) (start, end int) {
	start = rl.offset
	end = min(start+max(height, 1), len(rl.rows))
	if start > end {
		start = end
	}
	return start, end
}

// Visible returns the recipes in the visible window.
func (rl *RecipeList) Visible(height int) []recipes.Recipe {
	start, end := rl.Window(height)
	var out []recipes.Recipe
	for _, row := range rl.rows[start:end] {
		if !row.IsHeader() {
			out = append(out, row.Recipe)
		}
	}
	return out
}
