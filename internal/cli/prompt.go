package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Prompt and error strings for the interactive session.
const (
	promptSample  = "Enter sample DNA length (bp) or 'done': "
	promptControl = "Enter control DNA length (bp) or 'skip': "

	sentinelDone = "done"
	sentinelSkip = "skip"

	msgMustBePositive = "Must be positive integer."
	msgNoSamples      = "No samples entered. Exiting."
)

// errNoSamples signals that the user finished the session without entering
// any fragments. Commands treat it as a graceful exit, not a failure.
var errNoSamples = errors.New("no samples entered")

// errSessionAborted signals that the user cancelled the interactive session.
var errSessionAborted = errors.New("session aborted")

// parsePositiveInt parses s as a strictly positive integer.
func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return n, nil
}

// parseFragmentInput interprets one line of user input. It returns the
// parsed length, whether the input was the sentinel word, and an error
// message suitable for re-prompting.
func parseFragmentInput(s, sentinel string) (value int, isSentinel bool, err error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, sentinel) {
		return 0, true, nil
	}
	n, convErr := strconv.Atoi(trimmed)
	if convErr != nil {
		return 0, false, fmt.Errorf("Invalid input. Enter a number or '%s'.", sentinel)
	}
	if n <= 0 {
		return 0, false, errors.New(msgMustBePositive)
	}
	return n, false, nil
}

// =============================================================================
// Plain Prompt Loop
// =============================================================================

// collectFragments runs the prompt loop over plain reader/writer streams.
// It is used when stdin is not a terminal (piped input) and in tests.
//
// It returns the sample lengths and the control length (0 when skipped).
// errNoSamples is returned when the user types 'done' before entering any
// sample.
func collectFragments(in io.Reader, out io.Writer) ([]int, int, error) {
	scanner := bufio.NewScanner(in)

	var lengths []int
	for {
		fmt.Fprint(out, promptSample)
		if !scanner.Scan() {
			break
		}
		value, done, err := parseFragmentInput(scanner.Text(), sentinelDone)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		if done {
			break
		}
		lengths = append(lengths, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read input: %w", err)
	}
	if len(lengths) == 0 {
		fmt.Fprintln(out, msgNoSamples)
		return nil, 0, errNoSamples
	}

	for {
		fmt.Fprint(out, promptControl)
		if !scanner.Scan() {
			return lengths, 0, nil
		}
		value, skip, err := parseFragmentInput(scanner.Text(), sentinelSkip)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		if skip {
			return lengths, 0, nil
		}
		return lengths, value, nil
	}
}

// =============================================================================
// Interactive Session (bubbletea)
// =============================================================================

// sessionPhase tracks which fragment the session is currently asking for.
type sessionPhase int

const (
	phaseSamples sessionPhase = iota
	phaseControl
	phaseFinished
)

// sessionModel is the bubbletea model for the interactive fragment entry
// session. It collects sample lengths until 'done', then one optional
// control length.
type sessionModel struct {
	phase   sessionPhase
	input   string
	lengths []int
	control int
	errMsg  string
	aborted bool
}

func newSessionModel() sessionModel {
	return sessionModel{phase: phaseSamples}
}

func (m sessionModel) Init() tea.Cmd {
	return nil
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		return m.submit()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}

	for _, r := range key.Runes {
		if unicode.IsDigit(r) || unicode.IsLetter(r) || r == '-' {
			m.input += string(r)
		}
	}
	return m, nil
}

// submit validates the current input line and advances the session.
func (m sessionModel) submit() (tea.Model, tea.Cmd) {
	line := m.input
	m.input = ""
	m.errMsg = ""

	switch m.phase {
	case phaseSamples:
		value, done, err := parseFragmentInput(line, sentinelDone)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if done {
			if len(m.lengths) == 0 {
				m.phase = phaseFinished
				return m, tea.Quit
			}
			m.phase = phaseControl
			return m, nil
		}
		m.lengths = append(m.lengths, value)
		return m, nil

	case phaseControl:
		value, skip, err := parseFragmentInput(line, sentinelSkip)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if !skip {
			m.control = value
		}
		m.phase = phaseFinished
		return m, tea.Quit
	}
	return m, tea.Quit
}

func (m sessionModel) View() string {
	if m.phase == phaseFinished {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Virtual Gel Electrophoresis"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type a fragment length and press enter  ·  esc to quit"))
	b.WriteString("\n\n")

	for i, l := range m.lengths {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  sample %d: ", i+1)))
		b.WriteString(StyleValue.Render(fmt.Sprintf("%d bp", l)))
		b.WriteString("\n")
	}
	if len(m.lengths) > 0 {
		b.WriteString("\n")
	}

	prompt := promptSample
	if m.phase == phaseControl {
		prompt = promptControl
	}
	b.WriteString(StyleHighlight.Render(prompt))
	b.WriteString(m.input)
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(StyleWarning.Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

// runInteractiveSession runs the bubbletea fragment entry session on the
// terminal and returns the collected lengths and control (0 when skipped).
func runInteractiveSession(ctx context.Context) ([]int, int, error) {
	p := tea.NewProgram(newSessionModel(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, 0, fmt.Errorf("interactive session: %w", err)
	}

	m, ok := final.(sessionModel)
	if !ok {
		return nil, 0, fmt.Errorf("interactive session: unexpected model type")
	}
	if m.aborted {
		return nil, 0, errSessionAborted
	}
	if len(m.lengths) == 0 {
		fmt.Println(msgNoSamples)
		return nil, 0, errNoSamples
	}
	return m.lengths, m.control, nil
}
