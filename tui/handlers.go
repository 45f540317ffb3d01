package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleKeyPress(key string) tea.Cmd {
	if a.currentMode == HelpMode {
		return a.handleHelpKeys(key)
	}

	// Global
	switch key {
	case "ctrl+c", "q":
		a.Close()
		return tea.Quit
	case "?":
		return a.toggleHelp()
	case "esc":
		return a.handleEscape()
	case "r":
		return a.refresh()
	}

	if a.viewState == ViewLoaded {
		return a.handleBrowseKeys(key)
	}
	return nil
}

func (a *App) handleBrowseKeys(key string) tea.Cmd {
	rows := a.layout.Calculate().ListRows

	switch key {
	case "up", "k":
		a.list.MoveUp()
	case "down", "j":
		a.list.MoveDown()
	case "pgup":
		a.list.PageUp(rows)
	case "pgdown", "pgdn":
		a.list.PageDown(rows)
	case "home", "g":
		a.list.PageUp(len(a.list.Rows()))
	case "end", "G":
		a.list.PageDown(len(a.list.Rows()))
	case "s":
		a.list.SetSort(a.list.SortOption().Next())
		a.syncSlots()
		return a.setStatus("Sorted by "+a.list.SortOption().String(), 2)
	case "o", "enter":
		return a.openSelected(false)
	case "y":
		return a.openSelected(true)
	default:
		return nil
	}

	a.syncSlots()
	return nil
}

func (a *App) openSelected(video bool) tea.Cmd {
	r := a.list.Selected()
	if r == nil {
		return nil
	}

	target, label := r.SourceURL, "recipe source"
	if video {
		target, label = r.YoutubeURL, "video"
	}
	if target == "" {
		return a.setStatus(IconWarning+" No "+label+" for "+r.Name, 2)
	}

	if err := a.openURL(target); err != nil {
		a.setError("Failed to open "+label, err.Error())
		return nil
	}
	return a.setStatus(IconCheck+" Opened "+label+" in browser", 2)
}

func (a *App) refresh() tea.Cmd {
	if a.viewState == ViewLoading {
		return nil
	}
	a.viewState = ViewLoading
	a.loadErr = nil
	a.syncSlots()
	return tea.Batch(a.fetchRecipes(), a.setStatus("Refreshing recipes...", 1))
}

func (a *App) handleHelpKeys(key string) tea.Cmd {
	if key == "ctrl+c" {
		a.Close()
		return tea.Quit
	}
	a.currentMode = a.previousMode
	return nil
}

func (a *App) toggleHelp() tea.Cmd {
	if a.currentMode == HelpMode {
		a.currentMode = a.previousMode
	} else {
		a.previousMode = a.currentMode
		a.currentMode = HelpMode
	}
	return nil
}

func (a *App) handleEscape() tea.Cmd {
	if a.statusMessage != "" {
		a.statusMessage = ""
		a.statusTimeout = 0
	}
	return nil
}
