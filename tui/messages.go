package tui

import "fetchbites/recipes"

type Mode int

const (
	BrowseMode Mode = iota
	HelpMode
)

// ViewState is the state of the recipe list as a whole.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewLoaded
	ViewEmpty
	ViewError
)

type RecipesLoadedMsg struct {
	Recipes []recipes.Recipe
	Error   error
}

// ImageUpdatedMsg tells the view a slot's coordinator committed a new state.
// The view reads the state from the coordinator, so delivery order does not
// matter.
type ImageUpdatedMsg struct {
	SlotID string
}

type StatusTickMsg struct{}
