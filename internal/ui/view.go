// Package ui renders the game with Bubble Tea. The model is a thin view
// over the controller: every gameplay key routes to a controller call, and
// controller signals come back as messages through the Relay.
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"barmix/internal/app"
	"barmix/internal/game"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Flip    key.Binding
	Pour    key.Binding
	Stir    key.Binding
	Submit  key.Binding
	Start   key.Binding
	Empty   key.Binding
	Redo    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Replay  key.Binding
	Book    key.Binding
	Stats   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pour, k.Flip, k.Stir, k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Left, k.Right, k.Flip, k.Pour, k.Stir},
		{k.Submit, k.Empty, k.Redo, k.Next, k.Prev, k.Replay},
		{k.Book, k.Stats, k.Restart, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "bottle left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "bottle right")),
		Flip:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip bottle")),
		Pour:    key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "pour")),
		Stir:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stir")),
		Submit:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "serve")),
		Start:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Empty:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "empty glass")),
		Redo:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset level")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level")),
		Prev:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous level")),
		Replay:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "replay level")),
		Book:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "recipe book")),
		Stats:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "statistics")),
		Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart game")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Messages delivered by the Relay.
type phaseMsg struct {
	level int
	phase game.Phase
}

type remainingMsg struct {
	level     int
	remaining int
}

type verdictMsg struct {
	level   int
	verdict game.Verdict
}

type recordMsg struct {
	level   int
	seconds int
}

type completeMsg struct {
	level int
	all   bool
}

type promptMsg struct {
	prompt app.Prompt
}

type flashClearMsg struct {
	seq int
}

type stirDoneMsg struct{}

// Relay forwards controller signals into the running Bubble Tea program.
// Attach it after the program is created; signals before that are dropped.
type Relay struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewRelay() *Relay { return &Relay{} }

func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *Relay) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (r *Relay) PhaseChanged(level int, phase game.Phase) { r.send(phaseMsg{level, phase}) }

func (r *Relay) TimeRemaining(level, s int) { r.send(remainingMsg{level, s}) }

func (r *Relay) VerdictReady(level int, v game.Verdict) { r.send(verdictMsg{level, v}) }

func (r *Relay) NewRecord(level, s int) { r.send(recordMsg{level, s}) }

func (r *Relay) LevelComplete(level int, all bool) { r.send(completeMsg{level, all}) }

func (r *Relay) PromptRequested(p app.Prompt) { r.send(promptMsg{p}) }

var _ app.Listener = (*Relay)(nil)

// Model is the Bubble Tea root model.
type Model struct {
	ctrl  Controller
	theme Theme
	keys  keyMap
	help  help.Model
	bar   progress.Model
	md    *glamour.TermRenderer
	ascii bool

	width  int
	height int
	screen Screen

	// Shelf state is view-owned: which bottle is selected and which
	// bottle types are currently flipped. The core only sees the flip
	// state at the moment of a pour.
	shelf      []game.IngredientType
	shelfIndex int
	flipped    map[game.IngredientType]bool
	stirring   bool

	phase     game.Phase
	remaining int
	verdict   *game.Verdict
	prompt    *app.Prompt

	flash     string
	flashErr  bool
	flashSeq  int
	newRecord bool
	allDone   bool
}

type Options struct {
	ASCIIOnly bool
}

func New(ctrl Controller, opts Options) Model {
	h := help.New()
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(70),
	)
	if err != nil {
		md = nil
	}

	m := Model{
		ctrl:      ctrl,
		theme:     DefaultTheme(),
		keys:      defaultKeyMap(),
		help:      h,
		bar:       bar,
		md:        md,
		ascii:     opts.ASCIIOnly,
		flipped:   map[game.IngredientType]bool{},
		phase:     ctrl.Phase(),
		remaining: ctrl.Remaining(),
	}
	m.reloadShelf()
	return m
}

// reloadShelf rebuilds the bottle row from the active recipe and clears
// every flip toggle.
func (m *Model) reloadShelf() {
	r := m.ctrl.Recipe()
	m.shelf = m.shelf[:0]
	seen := map[game.IngredientType]bool{}
	for _, ing := range r.Ingredients {
		if !seen[ing.Type] {
			seen[ing.Type] = true
			m.shelf = append(m.shelf, ing.Type)
		}
	}
	m.shelfIndex = 0
	m.flipped = map[game.IngredientType]bool{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if msg.Width > 40 {
			m.bar.Width = msg.Width / 3
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case phaseMsg:
		m.phase = msg.phase
		m.remaining = m.ctrl.Remaining()
		if msg.phase == game.PhaseNotStarted {
			m.verdict = nil
			m.reloadShelf()
		}
		return m, nil

	case remainingMsg:
		m.remaining = msg.remaining
		return m, nil

	case verdictMsg:
		v := msg.verdict
		m.verdict = &v
		return m, nil

	case recordMsg:
		m.newRecord = true
		return m.withFlash(fmt.Sprintf("New record: %s!", FormatClock(msg.seconds)), false)

	case completeMsg:
		if msg.all {
			m.allDone = true
			return m.withFlash("Every cocktail mastered. The bar is yours!", false)
		}
		return m.withFlash("Cocktail served! Press n for the next level.", false)

	case promptMsg:
		p := msg.prompt
		m.prompt = &p
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case stirDoneMsg:
		m.stirring = false
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// An outstanding prompt captures the keyboard: y confirms, anything
	// that dismisses counts as no.
	if m.prompt != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			_ = m.ctrl.ResolvePrompt(m.prompt.ID, true)
			m.prompt = nil
		case "n", "N", "esc":
			_ = m.ctrl.CancelPrompt(m.prompt.ID)
			m.prompt = nil
		}
		return m, nil
	}

	if m.screen != ScreenPlaying {
		switch {
		case key.Matches(msg, m.keys.Stats), key.Matches(msg, m.keys.Book):
			m.screen = ScreenPlaying
		default:
			if msg.String() == "esc" {
				m.screen = ScreenPlaying
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Stats):
		m.screen = ScreenStats

	case key.Matches(msg, m.keys.Book):
		m.screen = ScreenRecipeBook

	case key.Matches(msg, m.keys.Start):
		return m.handleStartPause()

	case key.Matches(msg, m.keys.Left):
		if m.shelfIndex > 0 {
			m.shelfIndex--
		}

	case key.Matches(msg, m.keys.Right):
		if m.shelfIndex < len(m.shelf)-1 {
			m.shelfIndex++
		}

	case key.Matches(msg, m.keys.Flip):
		if len(m.shelf) > 0 {
			t := m.shelf[m.shelfIndex]
			m.flipped[t] = !m.flipped[t]
		}

	case key.Matches(msg, m.keys.Pour):
		if len(m.shelf) > 0 {
			t := m.shelf[m.shelfIndex]
			if err := m.ctrl.Pour(t, m.flipped[t]); err != nil {
				return m.withFlash(pourError(t, err), true)
			}
		}

	case key.Matches(msg, m.keys.Stir):
		// A stir in flight swallows repeats, mirroring the pour animation
		// debounce. The core itself never limits stirs.
		if m.stirring {
			return m, nil
		}
		if err := m.ctrl.Stir(); err != nil {
			return m.withFlash(actionError(err), true)
		}
		m.stirring = true
		return m, tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
			return stirDoneMsg{}
		})

	case key.Matches(msg, m.keys.Submit):
		if _, err := m.ctrl.SubmitSolution(); err != nil {
			return m.withFlash(actionError(err), true)
		}

	case key.Matches(msg, m.keys.Empty):
		if err := m.ctrl.ResetGlass(); err != nil {
			return m.withFlash(actionError(err), true)
		}

	case key.Matches(msg, m.keys.Redo):
		if err := m.ctrl.ResetLevel(); err != nil {
			return m.withFlash(actionError(err), true)
		}

	case key.Matches(msg, m.keys.Next):
		if err := m.ctrl.AdvanceLevel(); err != nil {
			return m.withFlash(actionError(err), true)
		}

	case key.Matches(msg, m.keys.Prev):
		if err := m.ctrl.PreviousLevel(); err != nil {
			return m.withFlash(actionError(err), true)
		}

	case key.Matches(msg, m.keys.Replay):
		if err := m.ctrl.RequestReplay(); err != nil {
			return m.withFlash(actionError(err), true)
		}

	case key.Matches(msg, m.keys.Restart):
		if err := m.ctrl.RestartGame(); err != nil {
			return m.withFlash(actionError(err), true)
		}
	}
	return m, nil
}

func (m Model) handleStartPause() (tea.Model, tea.Cmd) {
	var err error
	switch m.ctrl.Phase() {
	case game.PhaseRunning:
		err = m.ctrl.PauseLevel()
	case game.PhasePaused:
		err = m.ctrl.ResumeLevel()
	default:
		err = m.ctrl.StartLevel()
	}
	if err != nil {
		return m.withFlash(actionError(err), true)
	}
	return m, nil
}

func (m Model) withFlash(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.flash = text
	m.flashErr = isErr
	m.flashSeq++
	seq := m.flashSeq
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

func pourError(t game.IngredientType, err error) string {
	switch err {
	case game.ErrFlipRequired:
		return fmt.Sprintf("Flip the %s bottle first (press f)", t)
	case game.ErrGlassFull:
		return "The glass is full"
	default:
		return actionError(err)
	}
}

func actionError(err error) string {
	switch err {
	case game.ErrNotRunning:
		return "Start the level first (space)"
	case game.ErrGlassEmpty:
		return "The glass is empty"
	case game.ErrAlreadyCompleted:
		return "Already completed. Press a to replay"
	case game.ErrAlreadyRunning:
		return "Already mixing"
	case app.ErrLevelLocked:
		return "Finish this cocktail first"
	case app.ErrFirstLevel:
		return "This is the first level"
	case app.ErrAllLevelsComplete:
		return "No more levels. Press t for your statistics"
	case app.ErrPromptPending:
		return "Answer the question first"
	default:
		return err.Error()
	}
}

func (m Model) View() string {
	switch m.screen {
	case ScreenStats:
		return m.viewStats()
	case ScreenRecipeBook:
		return m.viewRecipeBook()
	default:
		return m.viewPlaying()
	}
}

func (m Model) viewPlaying() string {
	r := m.ctrl.Recipe()
	var b strings.Builder

	title := fmt.Sprintf("Level %d/%d", m.ctrl.CurrentLevel(), m.ctrl.TotalLevels())
	name := r.Name
	if !m.ascii && r.Emoji != "" {
		name = r.Emoji + " " + name
	}
	header := m.theme.Header.Render(title) + " " + m.theme.PanelTitle.Render(name)
	b.WriteString(header)
	b.WriteByte('\n')

	// Clock row: phase, mm:ss, and the time bar.
	pct := 0.0
	if r.TimeLimitSeconds > 0 {
		pct = float64(m.remaining) / float64(r.TimeLimitSeconds)
	}
	clock := m.theme.Accent.Render(FormatClock(m.remaining))
	if m.remaining <= 10 && m.phase == game.PhaseRunning {
		clock = m.theme.Fail.Render(FormatClock(m.remaining))
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n", m.phaseLabel(), clock, m.bar.ViewAs(pct)))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGlassPanel(),
		"   ",
		m.renderRecipePanel(r),
	))
	b.WriteString("\n\n")

	b.WriteString(m.renderShelf())
	b.WriteString("\n\n")

	if m.verdict != nil {
		b.WriteString(m.renderVerdict(*m.verdict))
		b.WriteByte('\n')
	}
	if m.flash != "" {
		style := m.theme.Pass
		if m.flashErr {
			style = m.theme.Warning
		}
		b.WriteString(style.Render(m.flash))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))

	out := b.String()
	if m.prompt != nil {
		out += "\n" + m.renderPrompt(*m.prompt)
	}
	return out
}

func (m Model) phaseLabel() string {
	switch m.phase {
	case game.PhaseRunning:
		return m.theme.Pass.Render("MIXING")
	case game.PhasePaused:
		return m.theme.Warning.Render("PAUSED")
	case game.PhaseTimedOut:
		return m.theme.Fail.Render("TIME UP")
	case game.PhaseCompleted:
		return m.theme.Pass.Render("SERVED")
	case game.PhaseFailed:
		return m.theme.Fail.Render("REJECTED")
	default:
		if m.ctrl.Replay() {
			return m.theme.Muted.Render("REPLAY READY")
		}
		return m.theme.Muted.Render("READY")
	}
}

func (m Model) renderShelf() string {
	if len(m.shelf) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.shelf))
	for i, t := range m.shelf {
		label := strings.ReplaceAll(string(t), "_", " ")
		if m.flipped[t] {
			if m.ascii {
				label = "!" + label
			} else {
				label = "↺ " + label
			}
		}
		cell := " " + label + " "
		switch {
		case i == m.shelfIndex:
			cell = m.theme.Selected.Render(cell)
		case m.flipped[t]:
			cell = m.theme.Flipped.Render(cell)
		default:
			cell = m.theme.PanelBody.Render(cell)
		}
		parts = append(parts, cell)
	}
	return m.theme.PanelTitle.Render("Shelf") + "  " + strings.Join(parts, " ")
}

func (m Model) renderGlassPanel() string {
	contents := m.ctrl.GlassContents()
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Glass"))
	b.WriteByte('\n')
	for _, line := range glassLines(contents, m.ascii) {
		if line == "" {
			b.WriteString(m.theme.Muted.Render("|        |"))
		} else {
			b.WriteString(m.theme.PanelBody.Render("| " + line))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.theme.Muted.Render("+--------+"))
	b.WriteByte('\n')
	b.WriteString(m.theme.PanelBody.Render("Stirs " + stirMarks(m.ctrl.StirCount(), m.ctrl.Recipe().RequiredStirs)))
	return m.theme.PanelBorder.Render(b.String())
}

func (m Model) renderRecipePanel(r game.Recipe) string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Recipe"))
	b.WriteByte('\n')
	for _, ing := range r.Ingredients {
		line := fmt.Sprintf("%d x %s", ing.Quantity, strings.ReplaceAll(string(ing.Type), "_", " "))
		if m.ctrl.PourSensitive(ing.Type) {
			if m.ascii {
				line += " (flip)"
			} else {
				line += " ↺"
			}
		}
		b.WriteString(m.theme.PanelBody.Render(line))
		b.WriteByte('\n')
	}
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("stir %d times, %s on the clock",
		r.RequiredStirs, FormatClock(r.TimeLimitSeconds))))
	return b.String()
}

func (m Model) renderVerdict(v game.Verdict) string {
	if v.Success() {
		return m.theme.Pass.Render("Perfect mix!")
	}
	var reasons []string
	if !v.IngredientsOK {
		switch v.Reason {
		case game.FailFlipNotHonored:
			reasons = append(reasons, fmt.Sprintf("%s was poured without a flip", v.FailedType))
		default:
			reasons = append(reasons, fmt.Sprintf("not enough %s", v.FailedType))
		}
	}
	if !v.StirsOK {
		reasons = append(reasons, fmt.Sprintf("wrong stirring (%s)", stirMarks(v.StirsDone, v.StirsRequired)))
	}
	return m.theme.Fail.Render("Not quite: " + strings.Join(reasons, "; "))
}

func (m Model) renderPrompt(p app.Prompt) string {
	body := m.theme.OverlayTitle.Render(p.Question) + "\n\n" +
		m.theme.PanelBody.Render("y: yes    n: no")
	return m.theme.Overlay.Render(body)
}

func (m Model) viewStats() string {
	o := m.ctrl.Overview()
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Bar Statistics"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.PanelBody.Render(fmt.Sprintf("Cocktails mastered  %d/%d (%d%%)",
		o.CompletedLevels, o.TotalLevels, o.SuccessRate)))
	b.WriteByte('\n')
	b.WriteString(m.theme.PanelBody.Render(fmt.Sprintf("Attempts            %d", o.TotalAttempts)))
	b.WriteByte('\n')
	if o.TotalAttempts > 0 {
		b.WriteString(m.theme.PanelBody.Render(fmt.Sprintf("Average time        %s", FormatClock(o.AverageTimeSeconds))))
		b.WriteByte('\n')
	}
	if o.OverallBestTime != nil {
		b.WriteString(m.theme.Accent.Render(fmt.Sprintf("Best pour           %s", FormatClock(*o.OverallBestTime))))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for _, row := range m.ctrl.LevelRows() {
		mark := m.theme.Muted.Render("  ")
		if row.Completed {
			if m.ascii {
				mark = m.theme.Pass.Render("* ")
			} else {
				mark = m.theme.Pass.Render("✓ ")
			}
		}
		line := fmt.Sprintf("%sLevel %d  %-16s attempts %d", mark, row.Level, row.Name, row.Attempts)
		if row.BestTimeSeconds != nil {
			line += "  best " + FormatClock(*row.BestTimeSeconds)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.theme.Muted.Render("t or esc to return"))
	return b.String()
}

// viewRecipeBook renders the active recipe as a markdown card.
func (m Model) viewRecipeBook() string {
	r := m.ctrl.Recipe()
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", r.Name)
	fmt.Fprintf(&md, "Time limit **%s**, stir **%d** times.\n\n", FormatClock(r.TimeLimitSeconds), r.RequiredStirs)
	for _, ing := range r.Ingredients {
		label := strings.ReplaceAll(string(ing.Type), "_", " ")
		if m.ctrl.PourSensitive(ing.Type) {
			label += " **FLIPPED**"
		}
		fmt.Fprintf(&md, "- %d x %s\n", ing.Quantity, label)
	}
	md.WriteString("\nBottles marked FLIPPED must be inverted before pouring.\n")

	text := md.String()
	if m.md != nil {
		if rendered, err := m.md.Render(text); err == nil {
			text = rendered
		}
	}
	return text + "\n" + m.theme.Muted.Render("g or esc to return")
}
