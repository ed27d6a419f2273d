package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sparsestress/pkg/pipeline"
)

// Progress bar styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	tuiDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 40

// =============================================================================
// LayoutModel - Interactive layout progress
// =============================================================================

// iterationMsg reports a finished majorization sweep.
type iterationMsg int

// layoutDoneMsg carries the pipeline result once the layout has finished.
type layoutDoneMsg struct {
	result *pipeline.Result
	err    error
}

// LayoutModel is the bubbletea model shown by layout --tui.
type LayoutModel struct {
	Title     string
	Max       int
	Iteration int
	Start     time.Time
	Result    *pipeline.Result
	Err       error
	Done      bool
	Aborted   bool

	cancel context.CancelFunc
}

// NewLayoutModel creates a progress model for a run of at most total sweeps.
func NewLayoutModel(title string, total int, cancel context.CancelFunc) LayoutModel {
	return LayoutModel{
		Title:  title,
		Max:    total,
		Start:  time.Now(),
		cancel: cancel,
	}
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case iterationMsg:
		m.Iteration = int(msg)
	case layoutDoneMsg:
		m.Result, m.Err, m.Done = msg.result, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	b.WriteString(progressBar(barWidth, m.Iteration, m.Max))
	b.WriteString(fmt.Sprintf("  %s / %d", StyleNumber.Render(fmt.Sprint(m.Iteration)), m.Max))
	b.WriteString("\n")

	elapsed := time.Since(m.Start).Round(100 * time.Millisecond)
	if m.Done {
		b.WriteString(tuiDimStyle.Render(fmt.Sprintf("finished in %s", elapsed)))
	} else {
		b.WriteString(tuiDimStyle.Render(fmt.Sprintf("elapsed %s  q quit", elapsed)))
	}
	b.WriteString("\n")

	return b.String()
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(width, done, total int) string {
	filled := 0
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// =============================================================================
// Runner
// =============================================================================

// runWithTUI runs fn while showing its iteration progress. fn must report
// every finished sweep through progress. Quitting the view cancels ctx and
// returns context.Canceled.
func runWithTUI(ctx context.Context, title string, total int, fn func(ctx context.Context, progress func(int)) (*pipeline.Result, error)) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewLayoutModel(title, total, cancel), tea.WithContext(ctx), tea.WithOutput(uiOut))

	go func() {
		res, err := fn(ctx, func(it int) { p.Send(iterationMsg(it)) })
		p.Send(layoutDoneMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, context.Canceled
		}
		return nil, fmt.Errorf("progress view: %w", err)
	}

	m := final.(LayoutModel)
	if m.Aborted {
		return nil, context.Canceled
	}
	return m.Result, m.Err
}
