package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/sharetube/partyclient/internal/domain"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

var Emojis = []string{"😂", "😮", "😍", "👏", "🔥", "🍿"}

type iController interface {
	TogglePlayPause(ctx context.Context)
	Seek(ctx context.Context, fraction float64)
	SeekClick(ctx context.Context, offsetX, width float64)
	Sync(ctx context.Context)
	SendChat(ctx context.Context, text string)
	SendEmoji(ctx context.Context, emoji string)
	LoadCandidates(ctx context.Context)
	Vote(ctx context.Context, contentID string)
	LoadTally(ctx context.Context)
	AddExpense(ctx context.Context, description, amount string)
	LoadExpenses(ctx context.Context)
	LoadRooms(ctx context.Context)
	SelectTab(tab domain.Tab)
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// Commands turns input lines into controller actions. A line that does not
// start with a slash is sent as a chat message.
type Commands struct {
	ctrl     iController
	view     *View
	commands map[string]command
}

func NewCommands(ctrl iController, view *View) *Commands {
	c := &Commands{ctrl: ctrl, view: view}
	c.commands = map[string]command{
		"/play":       {"/play (toggles play/pause)", c.togglePlayPause},
		"/seek":       {"/seek <fraction>", c.seek},
		"/click":      {"/click <offset> <width>", c.click},
		"/sync":       {"/sync", c.sync},
		"/emoji":      {"/emoji <emoji|number>", c.emoji},
		"/emojis":     {"/emojis", c.listEmojis},
		"/candidates": {"/candidates", c.candidates},
		"/vote":       {"/vote <content_id>", c.vote},
		"/tally":      {"/tally", c.tally},
		"/expense":    {"/expense <amount> <description>", c.expense},
		"/expenses":   {"/expenses", c.expenses},
		"/rooms":      {"/rooms", c.rooms},
		"/tab":        {"/tab chat|vote|expenses", c.tab},
		"/status":     {"/status", c.status},
		"/help":       {"/help", c.help},
		"/quit":       {"/quit", c.quit},
	}

	return c
}

// Run executes lines from r until it is exhausted, ctx is done, or /quit.
func (c *Commands) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		err := c.Execute(ctx, scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			c.view.Notify(err.Error())
		}
	}

	return scanner.Err()
}

func (c *Commands) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, "/") {
		c.ctrl.SendChat(ctx, line)
		return nil
	}

	fields := strings.Fields(line)
	cmd, ok := c.commands[fields[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	if err := cmd.run(ctx, fields[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
		}
		return err
	}

	return nil
}

func (c *Commands) togglePlayPause(ctx context.Context, _ []string) error {
	c.ctrl.TogglePlayPause(ctx)
	return nil
}

func (c *Commands) seek(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	fraction, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return ErrUsage
	}

	c.ctrl.Seek(ctx, fraction)
	return nil
}

func (c *Commands) click(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}

	offsetX, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return ErrUsage
	}
	width, err := strconv.ParseFloat(args[1], 64)
	if err != nil || width <= 0 {
		return ErrUsage
	}

	c.ctrl.SeekClick(ctx, offsetX, width)
	return nil
}

func (c *Commands) sync(ctx context.Context, _ []string) error {
	c.ctrl.Sync(ctx)
	return nil
}

// emoji accepts the emoji itself or its 1-based number in Emojis.
func (c *Commands) emoji(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	emoji := args[0]
	if n, err := strconv.Atoi(emoji); err == nil {
		if n < 1 || n > len(Emojis) {
			return ErrUsage
		}
		emoji = Emojis[n-1]
	}

	c.ctrl.SendEmoji(ctx, emoji)
	return nil
}

func (c *Commands) listEmojis(_ context.Context, _ []string) error {
	list := make([]string, 0, len(Emojis))
	for i, e := range Emojis {
		list = append(list, fmt.Sprintf("%d=%s", i+1, e))
	}

	c.view.Notify("emojis: " + strings.Join(list, " "))
	return nil
}

func (c *Commands) candidates(ctx context.Context, _ []string) error {
	c.ctrl.LoadCandidates(ctx)
	return nil
}

func (c *Commands) vote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	c.ctrl.Vote(ctx, args[0])
	return nil
}

func (c *Commands) tally(ctx context.Context, _ []string) error {
	c.ctrl.LoadTally(ctx)
	return nil
}

// expense hands the raw amount to the controller, which owns validation.
func (c *Commands) expense(ctx context.Context, args []string) error {
	var amount, description string
	if len(args) > 0 {
		amount = args[0]
		description = strings.Join(args[1:], " ")
	}

	c.ctrl.AddExpense(ctx, description, amount)
	return nil
}

func (c *Commands) expenses(ctx context.Context, _ []string) error {
	c.ctrl.LoadExpenses(ctx)
	return nil
}

func (c *Commands) rooms(ctx context.Context, _ []string) error {
	c.ctrl.LoadRooms(ctx)
	return nil
}

func (c *Commands) tab(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	tab, err := domain.ParseTab(args[0])
	if err != nil {
		return err
	}

	c.ctrl.SelectTab(tab)
	return nil
}

func (c *Commands) status(_ context.Context, _ []string) error {
	c.view.PrintStatus()
	return nil
}

func (c *Commands) help(_ context.Context, _ []string) error {
	usages := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		usages = append(usages, cmd.usage)
	}
	slices.Sort(usages)

	c.view.Notify("commands: " + strings.Join(usages, ", ") + "; any other line is sent as chat")
	return nil
}

func (c *Commands) quit(_ context.Context, _ []string) error {
	return ErrQuit
}
