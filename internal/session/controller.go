package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/organize"
	"github.com/ppiankov/sortforge/internal/reporter"
)

// State is a controller state.
type State int

const (
	AwaitingConfirmation State = iota
	MenuOpen
	AwaitingOptionsConfirmation
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case MenuOpen:
		return "menu_open"
	case AwaitingOptionsConfirmation:
		return "awaiting_options_confirmation"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// MenuState tells whether the help menu accepts commands.
type MenuState int

const (
	Closed MenuState = iota
	Open
)

// Port is the interactive terminal surface.
type Port interface {
	// ReadLine shows prompt and returns one line without its newline.
	// io.EOF means no more input will arrive.
	ReadLine(prompt string) (string, error)
	Println(a ...any)
	Clear()
}

// Actions are the operations the session triggers.
type Actions interface {
	// Listing renders the current directory contents.
	Listing() (string, error)
	Organize(log *errlog.Log) (organize.Result, error)
	Backup(log *errlog.Log) error
}

const (
	confirmPrompt = "Would you like to sort this directory into sub-folders? [Y/N]: "
	menuPrompt    = "> "
	backupPrompt  = "Backup current directory? (WARNING: This could take a long time!): "
	enterPrompt   = "(Press [Enter] key to proceed.)"

	banner      = "_______________________\n Enter \"Menu\" for Help "
	invalid     = " Sorry, that's not an appropriate response. Try again."
	farewell    = " Good-bye!"
	closeHint   = "(\"Close\" to return.)"
	optionsHint = " Enter \"X\" to confirm choice or [Enter] key to backout."

	helpText = `
    Help Menu.
  Here is a list of commands:
    "About", "Options"`

	aboutText = `
    sortforge:
  A small tool to aid in file organization. Files are consolidated by file extension type.
  For each unique extension (e.g. .zip, .txt, .py) a folder is created and the matching
  files are moved into it. Files without an extension and existing folders stay where they are.`
)

// Controller drives the confirmation and menu state machine.
type Controller struct {
	port       Port
	actions    Actions
	text       *reporter.TextReporter
	showErrors bool

	state   State
	log     *errlog.Log
	backups int
}

// Config holds controller dependencies.
type Config struct {
	Port       Port
	Actions    Actions
	Reporter   *reporter.TextReporter
	ShowErrors bool
}

// New creates a controller in AwaitingConfirmation.
func New(cfg Config) *Controller {
	text := cfg.Reporter
	if text == nil {
		text = reporter.NewTextReporter(io.Discard, false)
	}
	return &Controller{
		port:       cfg.Port,
		actions:    cfg.Actions,
		text:       text,
		showErrors: cfg.ShowErrors,
		state:      AwaitingConfirmation,
		log:        errlog.New(),
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Menu returns whether the help menu is open.
func (c *Controller) Menu() MenuState {
	if c.state == MenuOpen || c.state == AwaitingOptionsConfirmation {
		return Open
	}
	return Closed
}

// Log returns the session's error log.
func (c *Controller) Log() *errlog.Log { return c.log }

// Backups returns how many backups were requested.
func (c *Controller) Backups() int { return c.backups }

// Run shows the listing and processes input until the user declines or
// input ends. End of input leaves the state unchanged and returns nil.
func (c *Controller) Run() error {
	if err := c.showListing(); err != nil {
		return err
	}
	for c.state != Terminated {
		if c.state == MenuOpen {
			c.port.Println(closeHint)
		}
		line, err := c.port.ReadLine(c.prompt())
		if err == nil {
			err = c.Handle(line)
		}
		if errors.Is(err, io.EOF) {
			slog.Debug("input closed", "state", c.state)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) prompt() string {
	switch c.state {
	case MenuOpen:
		return menuPrompt
	case AwaitingOptionsConfirmation:
		return backupPrompt
	default:
		return confirmPrompt
	}
}

// Handle applies one line of input to the current state.
func (c *Controller) Handle(input string) error {
	in := strings.ToLower(strings.TrimSpace(input))
	slog.Debug("input", "state", c.state, "value", in)

	switch c.state {
	case AwaitingConfirmation:
		switch {
		case strings.HasPrefix(in, "y"):
			return c.organize()
		case strings.HasPrefix(in, "n"):
			c.port.Println(farewell)
			c.state = Terminated
		case strings.Contains(in, "menu"):
			c.state = MenuOpen
			c.port.Println(helpText)
		default:
			c.port.Println(invalid)
		}

	case MenuOpen:
		switch {
		case strings.Contains(in, "close"):
			c.port.Clear()
			c.state = AwaitingConfirmation
			return c.showListing()
		case strings.Contains(in, "about"):
			c.port.Println(aboutText)
		case strings.Contains(in, "options"):
			c.port.Println(optionsHint)
			c.state = AwaitingOptionsConfirmation
		}

	case AwaitingOptionsConfirmation:
		c.state = MenuOpen
		if strings.Contains(in, "x") {
			c.backups++
			c.port.Println("Working.")
			if err := c.actions.Backup(c.log); err != nil {
				c.port.Println(fmt.Sprintf("Error: %v", err))
			}
		}
	}
	return nil
}

func (c *Controller) organize() error {
	if _, err := c.port.ReadLine(enterPrompt); err != nil {
		return err
	}
	res, err := c.actions.Organize(c.log)
	var locked *organize.LockedError
	if errors.As(err, &locked) {
		c.port.Println(fmt.Sprintf("Error: %v", err))
		return c.showListing()
	}
	if err != nil {
		return fmt.Errorf("organizing pass: %w", err)
	}
	c.port.Println(strings.TrimRight(c.text.Summary(res, c.log, c.showErrors), "\n"))
	if _, err := c.port.ReadLine(enterPrompt); err != nil {
		return err
	}
	return c.showListing()
}

func (c *Controller) showListing() error {
	listing, err := c.actions.Listing()
	if err != nil {
		return fmt.Errorf("list directory: %w", err)
	}
	c.port.Println(listing)
	c.port.Println(banner)
	return nil
}
