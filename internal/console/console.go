package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

type Mode int

const (
	ModeTerm Mode = iota
	ModeBuffer
	ModeSink
)

// Console routes every user facing message and prompt of a command.
// It writes progress lines, warnings and prompts, and reads answers from
// the terminal or from a prepared input in tests.
type Console struct {
	mode      Mode
	assumeYes bool
	in        *bufio.Reader
	out       io.Writer
	buf       *bytes.Buffer
	mu        sync.Mutex
}

// NewTerm returns a console attached to stdin and stderr.
func NewTerm(assumeYes bool) *Console {
	return &Console{
		mode:      ModeTerm,
		assumeYes: assumeYes,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stderr,
	}
}

// NewBuffer returns a console that reads answers from input and keeps its output in memory.
func NewBuffer(input string) *Console {
	buf := &bytes.Buffer{}
	return &Console{
		mode: ModeBuffer,
		in:   bufio.NewReader(strings.NewReader(input)),
		out:  buf,
		buf:  buf,
	}
}

// NewSink returns a console that discards output and answers every prompt with its default.
func NewSink() *Console {
	return &Console{
		mode: ModeSink,
		in:   bufio.NewReader(strings.NewReader("")),
		out:  io.Discard,
	}
}

func (c *Console) Mode() Mode {
	return c.mode
}

func (c *Console) SetAssumeYes(assumeYes bool) {
	c.assumeYes = assumeYes
}

func (c *Console) AssumeYes() bool {
	return c.assumeYes
}

// Output returns everything written to a buffer console.
func (c *Console) Output() string {
	if c.buf == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}

func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c, format, args...)
}

func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c, args...)
}

// Styled renders s with the given color attributes when attached to a colored terminal.
func (c *Console) Styled(s string, attrs ...color.Attribute) string {
	if c.mode != ModeTerm {
		return s
	}
	return color.New(attrs...).Sprint(s)
}

func (c *Console) Warn(msg string) {
	c.Printf("%s: %s\n", c.Styled("WARN", color.FgYellow, color.Bold), msg)
}

// Confirm asks a yes/no question. An empty or unrecognized answer selects def.
func (c *Console) Confirm(msg string, def bool) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	hint := "(y/N)"
	if def {
		hint = "(Y/n)"
	}
	answer, err := c.readLine(fmt.Sprintf("%s %s ", msg, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// Prompt prints prompt and returns the answer without its line ending.
func (c *Console) Prompt(prompt string) (string, error) {
	return c.readLine(prompt)
}

// PromptPassword behaves like Prompt but does not echo the answer on a terminal.
func (c *Console) PromptPassword(prompt string) (string, error) {
	if c.mode == ModeTerm && term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := readline.NewEx(&readline.Config{Stdout: c.out, Stderr: c.out})
		if err != nil {
			return "", err
		}
		defer rl.Close()
		pass, err := rl.ReadPassword(prompt)
		if err != nil {
			return "", err
		}
		return string(pass), nil
	}
	return c.readLine(prompt)
}

// GetEnvOrPrompt returns the value of env variable name, or prompts for it when unset.
func (c *Console) GetEnvOrPrompt(name, prompt string, isPassword bool) (string, error) {
	if val, ok := os.LookupEnv(name); ok {
		shown := val
		if isPassword {
			shown = constants.PasswordMask
		}
		c.Printf("%s%s (read from env %s)\n", prompt, shown, name)
		return val, nil
	}
	if isPassword {
		return c.PromptPassword(prompt)
	}
	return c.Prompt(prompt)
}

func (c *Console) readLine(prompt string) (string, error) {
	if c.mode == ModeTerm && term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := readline.NewEx(&readline.Config{Prompt: prompt, Stdout: c.out, Stderr: c.out})
		if err != nil {
			return "", err
		}
		defer rl.Close()
		return rl.Readline()
	}
	c.Printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewProgressBar returns a bar counting bytes up to total. It renders only on a terminal.
func (c *Console) NewProgressBar(total int64, description string) *progressbar.ProgressBar {
	visible := c.mode == ModeTerm && term.IsTerminal(int(os.Stderr.Fd()))
	var w io.Writer = io.Discard
	if visible {
		w = c
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
