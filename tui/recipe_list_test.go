package tui

import (
	"fmt"
	"testing"

	"fetchbites/recipes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRecipes = []recipes.Recipe{
	{ID: "r1", Name: "Tarte Tatin", Cuisine: "French", PhotoURLSmall: "https://img/r1s", PhotoURLLarge: "https://img/r1l", SourceURL: "https://src/r1"},
	{ID: "r2", Name: "Apple Crumble", Cuisine: "British", PhotoURLSmall: "https://img/r2s", PhotoURLLarge: "https://img/r2l", YoutubeURL: "https://yt/r2"},
	{ID: "r3", Name: "Bakewell Tart", Cuisine: "British", PhotoURLSmall: "https://img/r3s", PhotoURLLarge: "https://img/r3l"},
	{ID: "r4", Name: "Croque Monsieur", Cuisine: "French", PhotoURLSmall: "https://img/r4s", PhotoURLLarge: "https://img/r4l"},
	{ID: "r5", Name: "Apam Balik", Cuisine: "Malaysian", PhotoURLSmall: "https://img/r5s", PhotoURLLarge: "https://img/r5l", SourceURL: "https://src/r5"},
}

func recipeNames(rs []recipes.Recipe) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func manyRecipes(n int) []recipes.Recipe {
	out := make([]recipes.Recipe, n)
	for i := range out {
		out[i] = recipes.Recipe{
			ID:            fmt.Sprintf("id%02d", i),
			Name:          fmt.Sprintf("Recipe %02d", i),
			Cuisine:       []string{"American", "Italian", "Thai"}[i%3],
			PhotoURLSmall: fmt.Sprintf("https://img/%02d/small.png", i),
			PhotoURLLarge: fmt.Sprintf("https://img/%02d/large.png", i),
		}
	}
	return out
}

func TestRecipeListAlphabetical(t *testing.T) {
	rl := NewRecipeList(recipes.SortAlphabetical)
	rl.SetRecipes(sampleRecipes)

	require.Len(t, rl.Rows(), 5)
	assert.Equal(t, "Apam Balik", rl.Selected().Name)
	assert.Equal(t, 1, rl.Position())

	rl.MoveDown()
	assert.Equal(t, "Apple Crumble", rl.Selected().Name)
	rl.MoveUp()
	rl.MoveUp()
	assert.Equal(t, "Apam Balik", rl.Selected().Name)

	rl.PageDown(10)
	assert.Equal(t, "Tarte Tatin", rl.Selected().Name)
	assert.Equal(t, 5, rl.Position())
}

func TestRecipeListCuisineSkipsHeaders(t *testing.T) {
	rl := NewRecipeList(recipes.SortCuisine)
	rl.SetRecipes(sampleRecipes)

	rows := rl.Rows()
	require.Len(t, rows, 8)
	assert.Equal(t, "British", rows[0].Header)
	assert.Equal(t, "French", rows[3].Header)
	assert.Equal(t, "Malaysian", rows[6].Header)

	assert.Equal(t, 1, rl.SelectedIndex(), "selection starts on the first recipe, not a header")
	rl.MoveDown()
	rl.MoveDown()
	assert.Equal(t, "Croque Monsieur", rl.Selected().Name)
	assert.Equal(t, 3, rl.Position())

	rl.PageUp(10)
	assert.Equal(t, 1, rl.SelectedIndex())
}

func TestRecipeListSetSortKeepsSelection(t *testing.T) {
	rl := NewRecipeList(recipes.SortAlphabetical)
	rl.SetRecipes(sampleRecipes)
	rl.MoveDown()
	rl.MoveDown()
	require.Equal(t, "Bakewell Tart", rl.Selected().Name)

	rl.SetSort(recipes.SortCuisine)
	assert.Equal(t, recipes.SortCuisine, rl.SortOption())
	assert.Equal(t, "Bakewell Tart", rl.Selected().Name)
}

func TestRecipeListEmpty(t *testing.T) {
	rl := NewRecipeList(recipes.SortCuisine)
	rl.SetRecipes(nil)

	assert.Nil(t, rl.Selected())
	assert.Empty(t, rl.Visible(10))
	rl.MoveDown()
	rl.Scroll(5)
	start, end := rl.Window(5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestRecipeListScrollWindow(t *testing.T) {
	rl := NewRecipeList(recipes.SortAlphabetical)
	rl.SetRecipes(manyRecipes(20))

	rl.Scroll(5)
	assert.Equal(t, []string{"Recipe 00", "Recipe 01", "Recipe 02", "Recipe 03", "Recipe 04"}, recipeNames(rl.Visible(5)))

	rl.PageDown(7)
	rl.Scroll(5)
	start, end := rl.Window(5)
	assert.Equal(t, 3, start)
	assert.Equal(t, 8, end)
	assert.Equal(t, "Recipe 07", rl.Selected().Name)

	rl.PageUp(20)
	rl.Scroll(5)
	start, _ = rl.Window(5)
	assert.Equal(t, 0, start)
}

func TestRecipeListScrollShowsHeaderAboveSelection(t *testing.T) {
	rl := NewRecipeList(recipes.SortCuisine)
	rl.SetRecipes(manyRecipes(9))

	// rows: header, 3 recipes, header, 3 recipes, header, 3 recipes
	rl.PageDown(8)
	rl.Scroll(3)
	rl.PageUp(5)
	rl.Scroll(3)

	start, _ := rl.Window(3)
	assert.True(t, rl.Rows()[start].IsHeader(), "header above the first recipe of a group should be visible")
}
