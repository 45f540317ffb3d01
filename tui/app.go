package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fetchbites/cache"
	"fetchbites/fetcher"
	"fetchbites/loader"
	"fetchbites/recipes"
	"fetchbites/utils"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const detailSlotID = "detail"

// Options wires the browser to its data sources. Store, Fetcher and Decoder
// are shared by every image slot.
type Options struct {
	Repository recipes.Repository
	Store      *cache.Store
	Fetcher    fetcher.ImageFetcher
	Decoder    fetcher.Decoder
	Sort       string
}

type App struct {
	repo    recipes.Repository
	store   *cache.Store
	list    *RecipeList
	slots   *SlotManager
	detail  *loader.Coordinator
	thumbs  *ThumbnailRenderer
	layout  *Layout
	spinner spinner.Model
	theme   *Theme

	currentMode  Mode
	previousMode Mode
	viewState    ViewState
	loadErr      error

	statusMessage string
	statusTimeout int

	send    func(tea.Msg)
	openURL func(string) error
}

func NewApp(opts Options) *App {
	sortOpt, err := recipes.ParseSortOption(opts.Sort)
	if err != nil {
		logrus.WithError(err).Warn("falling back to alphabetical order")
	}

	a := &App{
		repo:        opts.Repository,
		store:       opts.Store,
		list:        NewRecipeList(sortOpt),
		thumbs:      NewThumbnailRenderer(0),
		layout:      NewLayout(),
		theme:       DefaultTheme(),
		currentMode: BrowseMode,
		viewState:   ViewLoading,
		openURL:     utils.OpenURL,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorSecondary)),
		),
	}
	a.slots = NewSlotManager(opts.Store, opts.Fetcher, opts.Decoder, a.notify)
	a.detail = a.slots.New(detailSlotID)
	return a
}

// SetSender connects image state changes to a running program. It must be
// called before the program starts.
func (a *App) SetSender(send func(tea.Msg)) {
	a.send = send
}

// notify runs on a loader goroutine, so the message is handed off instead of
// sent inline.
func (a *App) notify(slotID string) {
	if a.send != nil {
		go a.send(ImageUpdatedMsg{SlotID: slotID})
	}
}

// Close releases every image slot.
func (a *App) Close() {
	a.slots.CloseAll()
	a.detail.Close()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetchRecipes())
}

func (a *App) fetchRecipes() tea.Cmd {
	repo := a.repo
	return func() tea.Msg {
		list, err := repo.FetchRecipes(context.Background())
		return RecipesLoadedMsg{Recipes: list, Error: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.layout.Update(msg.Width, msg.Height)
		a.syncSlots()

	case tea.KeyMsg:
		if cmd := a.handleKeyPress(msg.String()); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case RecipesLoadedMsg:
		a.applyRecipes(msg)

	case ImageUpdatedMsg:
		// state is read from the loaders at render time

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case StatusTickMsg:
		a.statusTimeout--
		if a.statusTimeout <= 0 {
			a.statusMessage = ""
		} else {
			cmds = append(cmds, statusTick())
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) applyRecipes(msg RecipesLoadedMsg) {
	switch {
	case msg.Error != nil:
		logrus.WithError(msg.Error).Error("failed to load recipes")
		a.viewState = ViewError
		a.loadErr = msg.Error
		a.list.SetRecipes(nil)
	case len(msg.Recipes) == 0:
		a.viewState = ViewEmpty
		a.loadErr = nil
		a.list.SetRecipes(nil)
	default:
		a.viewState = ViewLoaded
		a.loadErr = nil
		a.list.SetRecipes(msg.Recipes)
	}
	a.syncSlots()
}

// syncSlots points the row loaders at the visible rows and the detail loader
// at the selected recipe's large photo.
func (a *App) syncSlots() {
	if a.viewState != ViewLoaded {
		a.slots.CloseAll()
		a.detail.Cancel()
		return
	}

	layout := a.layout.Calculate()
	a.list.Scroll(layout.ListRows)
	a.slots.Sync(a.list.Visible(layout.ListRows))

	if r := a.list.Selected(); r != nil && layout.ShowDetail {
		a.detail.RequestLoad(r.PhotoURLLarge)
	} else {
		a.detail.Cancel()
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return StatusTickMsg{}
	})
}

func (a *App) setStatus(message string, seconds int) tea.Cmd {
	a.statusMessage = message
	a.statusTimeout = seconds
	return statusTick()
}

func (a *App) setError(message, details string) {
	errorMsg := message
	if details != "" {
		errorMsg += ": " + details
	}
	a.statusMessage = IconCross + " " + errorMsg
	a.statusTimeout = 0
}

func (a *App) View() string {
	if !a.layout.IsMinimumSize() {
		return fmt.Sprintf("Terminal too small. Minimum size: %dx%d",
			a.layout.Breakpoints.MinWidth, a.layout.Breakpoints.MinHeight)
	}

	if a.currentMode == HelpMode {
		return a.renderHelp()
	}

	layout := a.layout.Calculate()

	var mainContent string
	switch a.viewState {
	case ViewLoaded:
		listPanel := a.renderListPanel(layout)
		if layout.ShowDetail {
			mainContent = lipgloss.JoinHorizontal(lipgloss.Top, listPanel, a.renderDetailPanel(layout))
		} else {
			mainContent = listPanel
		}
	default:
		mainContent = a.renderPlaceholder(layout)
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, a.renderStatusBar())
}

func (a *App) renderPlaceholder(layout AdaptiveLayout) string {
	theme := a.theme
	var lines []string

	switch a.viewState {
	case ViewLoading:
		lines = []string{a.spinner.View() + " " + theme.NormalTextStyle.Render("Loading recipes...")}
	case ViewEmpty:
		lines = []string{
			theme.TitleStyle.Render("No Recipes Found"),
			theme.MutedTextStyle.Render("Press r to refresh and try again"),
		}
	case ViewError:
		lines = []string{
			ErrorText("Something went wrong", theme),
			theme.MutedTextStyle.Render(describeLoadError(a.loadErr)),
			"",
			theme.MutedTextStyle.Render("Press r to try again"),
		}
	}

	return lipgloss.Place(
		a.layout.WindowWidth, layout.ContentHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func describeLoadError(err error) string {
	if err == nil {
		return ""
	}
	if recipes.IsMalformed(err) {
		return "The recipe data could not be read."
	}
	return err.Error()
}

func (a *App) renderListPanel(layout AdaptiveLayout) string {
	theme := a.theme
	width := layout.ListPanelWidth
	var lines []string

	header := theme.HeaderStyle.Render(IconRecipe+" FetchBites") + " " +
		StatusBadge(a.list.SortOption().String(), "info", theme)
	lines = append(lines, header)

	start, end := a.list.Window(layout.ListRows)
	rows := a.list.Rows()
	nameWidth := max(width-layout.ThumbCols-10, 8)

	for i := start; i < end; i++ {
		row := rows[i]
		if row.IsHeader() {
			lines = append(lines, theme.CuisineStyle.Render(IconCuisine+" "+row.Header))
			continue
		}

		prefix := "  "
		if i == a.list.SelectedIndex() {
			prefix = IconArrowRight + " "
		}

		name := utils.Truncate(row.Recipe.Name, nameWidth)
		if a.list.SortOption() == recipes.SortAlphabetical {
			name = theme.NormalTextStyle.Render(name) + " " +
				theme.MutedTextStyle.Render(utils.Truncate(row.Recipe.Cuisine, max(nameWidth-len([]rune(name)), 0)))
		} else {
			name = theme.NormalTextStyle.Render(name)
		}

		line := prefix + a.renderThumbCell(row.Recipe.ID, layout.ThumbCols) + " " + name
		if i == a.list.SelectedIndex() {
			line = theme.SelectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	for len(lines) < layout.ListRows+1 {
		lines = append(lines, "")
	}

	stats := a.store.Stats()
	footer := fmt.Sprintf("%d/%d recipes │ cache %d · %s",
		a.list.Position(), a.list.Len(), stats.Entries, utils.FormatBytes(stats.Cost))
	lines = append(lines, theme.MutedTextStyle.Render(footer))

	return theme.ActivePanelStyle.
		Width(width-2).
		Height(layout.ContentHeight-2).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderThumbCell(slotID string, cols int) string {
	cell := lipgloss.NewStyle().Width(cols).MaxWidth(cols)
	st, _ := a.slots.State(slotID)

	switch {
	case st.Phase == loader.Loaded:
		return cell.Render(a.thumbs.Render(st.Image, cols, 1))
	case st.IsLoading():
		return cell.Render(a.spinner.View())
	case st.Failed():
		return cell.Render(a.theme.ErrorStyle.Render(IconCross))
	default:
		return cell.Render(a.theme.MutedTextStyle.Render(IconNoPhoto))
	}
}

func (a *App) renderDetailPanel(layout AdaptiveLayout) string {
	theme := a.theme
	width := layout.DetailPanelWidth
	var lines []string

	r := a.list.Selected()
	if r == nil {
		lines = append(lines, theme.MutedTextStyle.Render("No recipe selected"))
	} else {
		lines = append(lines, theme.TitleStyle.Render(utils.Truncate(r.Name, width-6)))
		lines = append(lines, theme.CuisineStyle.Render(IconCuisine+" "+r.Cuisine))
		lines = append(lines, Separator(width-6, "─", ColorBorderLight))
		lines = append(lines, a.renderPhoto(r, layout))
		lines = append(lines, "")

		urlWidth := width - 12
		if r.SourceURL != "" {
			lines = append(lines, KeyHelp("o", IconLink, theme)+" "+theme.LinkStyle.Render(utils.Truncate(r.SourceURL, urlWidth)))
		}
		if r.YoutubeURL != "" {
			lines = append(lines, KeyHelp("y", IconVideo, theme)+" "+theme.LinkStyle.Render(utils.Truncate(r.YoutubeURL, urlWidth)))
		}
		if r.SourceURL == "" && r.YoutubeURL == "" {
			lines = append(lines, theme.MutedTextStyle.Render("No links"))
		}
	}

	return lipgloss.NewStyle().
		Border(theme.PanelBorder).
		BorderForeground(ColorBorder).
		Width(width-2).
		Height(layout.ContentHeight-2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderPhoto(r *recipes.Recipe, layout AdaptiveLayout) string {
	theme := a.theme
	if layout.PhotoMaxWidth == 0 {
		return ""
	}

	st := a.detail.State()
	switch {
	case r.PhotoURLLarge == "":
		return theme.MutedTextStyle.Render("No photo")
	case st.Phase == loader.Loaded && st.Locator == r.PhotoURLLarge:
		img := st.Image
		info := fmt.Sprintf("%dx%d %s · %s", img.Width(), img.Height(), img.Format,
			utils.FormatBytes(int64(img.EncodedSize)))
		return a.thumbs.Render(img, layout.PhotoMaxWidth, layout.PhotoMaxHeight-1) + "\n" +
			theme.MutedTextStyle.Render(info)
	case st.Failed():
		return ErrorText("Photo unavailable", theme)
	default:
		return a.spinner.View() + " " + theme.MutedTextStyle.Render("Loading photo...")
	}
}

func (a *App) renderStatusBar() string {
	theme := a.theme
	separator := theme.MutedTextStyle.Render(" │ ")

	if a.statusMessage != "" {
		if strings.HasPrefix(a.statusMessage, IconCross) {
			dismissHelp := theme.MutedTextStyle.Render(" │ Press ESC to dismiss")
			return theme.ErrorStyle.Render(a.statusMessage) + dismissHelp
		}
		if strings.HasPrefix(a.statusMessage, IconCheck) {
			return theme.SuccessStyle.Render(a.statusMessage)
		}
		if strings.HasPrefix(a.statusMessage, IconWarning) {
			return theme.WarningStyle.Render(a.statusMessage)
		}
		return theme.NormalTextStyle.Render(a.statusMessage)
	}

	var hints []string
	switch a.viewState {
	case ViewLoaded:
		hints = []string{
			KeyHelp("↑↓", "navigate", theme),
			KeyHelp("s", "sort", theme),
			KeyHelp("o", "recipe", theme),
			KeyHelp("y", "video", theme),
			KeyHelp("r", "refresh", theme),
			KeyHelp("?", "help", theme),
			KeyHelp("q", "quit", theme),
		}
	default:
		hints = []string{
			KeyHelp("r", "refresh", theme),
			KeyHelp("?", "help", theme),
			KeyHelp("q", "quit", theme),
		}
	}

	return strings.Join(hints, separator)
}

func (a *App) renderHelp() string {
	return helpText + "\n\n" + a.theme.HelpStyle.Render("Press any key to return...")
}

const helpText = `╔══════════════════════════════════════════════╗
║               FetchBites Help                ║
╠══════════════════════════════════════════════╣
║ Recipes:                                     ║
║   ↑/↓, k/j    Move selection                 ║
║   PgUp/PgDn   Page up/down                   ║
║   g/G         First/last recipe              ║
║   s           Toggle name / cuisine order    ║
║   r           Reload the recipe feed         ║
║                                              ║
║ Selected recipe:                             ║
║   o, Enter    Open recipe source in browser  ║
║   y           Open video in browser          ║
║                                              ║
║ Global:                                      ║
║   ?           Show/hide this help            ║
║   Esc         Dismiss error                  ║
║   q, Ctrl+C   Quit                           ║
╚══════════════════════════════════════════════╝`

func initLogging() error {
	logDir := filepath.Join(os.TempDir(), "fetchbites")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}
	logFile := filepath.Join(logDir, "tui.log")
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logrus.SetOutput(f)
	logrus.WithField("ts", time.Now().Format(time.RFC3339)).Info("tui session start")
	return nil
}

func Run(opts Options) error {
	if err := initLogging(); err != nil {
		return err
	}

	app := NewApp(opts)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	app.SetSender(p.Send)
	_, err := p.Run()

	stats := opts.Store.Stats()
	logrus.WithFields(logrus.Fields{
		"entries":   stats.Entries,
		"cost":      stats.Cost,
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"evictions": stats.Evictions,
	}).Info("tui session end")

	return err
}
