// AngelaMos | 2026
// console.go

// Package console implements the operator command set and an interactive
// shell on top of it.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"

	"github.com/carterperez-dev/pizzeria/internal/admin"
	"github.com/carterperez-dev/pizzeria/internal/cart"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/order"
	"github.com/carterperez-dev/pizzeria/internal/user"
)

const defaultPrompt = "> "

var (
	ErrExit           = errors.New("exit requested")
	ErrUnknownCommand = errors.New("command not recognized")
)

type Inspector interface {
	Stats(ctx context.Context) (*admin.SystemStats, error)
	ListUsers(ctx context.Context) ([]string, error)
	GetUser(ctx context.Context, email string) (*user.UserResponse, error)
	ListCarts(ctx context.Context) ([]string, error)
	GetCart(ctx context.Context, id string) (*cart.Cart, error)
	ListOrders(ctx context.Context) ([]string, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

type Command struct {
	Name string
	Args string
	Help string
	Run  func(ctx context.Context, args []string) error
}

type Console struct {
	inspector Inspector
	out       io.Writer
	prompt    string
	commands  []Command
}

func New(inspector Inspector, out io.Writer) *Console {
	c := &Console{inspector: inspector, out: out, prompt: defaultPrompt}

	c.commands = []Command{
		{Name: "man", Help: "Show this help page", Run: c.help},
		{Name: "help", Help: "Alias of the \"man\" command", Run: c.help},
		{Name: "exit", Help: "Leave the console", Run: c.exit},
		{Name: "stats", Help: "Record counts and runtime statistics", Run: c.stats},
		{Name: "list users", Help: "Show every registered user", Run: c.listUsers},
		{Name: "more user info", Args: "<email>", Help: "Show details of a user", Run: c.moreUserInfo},
		{Name: "list carts", Help: "Show every open cart", Run: c.listCarts},
		{Name: "more cart info", Args: "<cart id>", Help: "Show details of a cart", Run: c.moreCartInfo},
		{Name: "list orders", Help: "Show every placed order", Run: c.listOrders},
		{Name: "more order info", Args: "<order id>", Help: "Show details of an order", Run: c.moreOrderInfo},
	}

	return c
}

// SetPrompt changes the prompt; an empty prompt disables it.
func (c *Console) SetPrompt(p string) {
	c.prompt = p
}

func (c *Console) Commands() []Command {
	return c.commands
}

// Execute runs a single command line. It returns ErrExit when the operator
// asked to leave.
func (c *Console) Execute(ctx context.Context, line string) error {
	cmd, args, ok := c.match(line)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, strings.TrimSpace(line))
	}
	return cmd.Run(ctx, args)
}

// LineReader yields one command line per call and io.EOF when input ends.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// Run reads commands from in until EOF or "exit". Used for piped input;
// RunInteractive serves terminals.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	return c.Loop(ctx, &scanLines{console: c, scanner: bufio.NewScanner(in)})
}

// RunInteractive drives the console from a terminal with line editing,
// history and completion of command names. Ctrl-C on an empty line leaves.
func (c *Console) RunInteractive(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.prompt,
		AutoComplete:    c.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          c.out,
	})
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer rl.Close() //nolint:errcheck // terminal restore

	return c.Loop(ctx, interruptible{rl})
}

// Loop executes lines from lr until EOF or "exit". Command failures are
// printed and the loop continues.
func (c *Console) Loop(ctx context.Context, lr LineReader) error {
	fmt.Fprintln(c.out, "Console is running, type \"help\" for commands.")

	for {
		raw, err := lr.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		err = c.Execute(ctx, line)
		switch {
		case errors.Is(err, ErrExit):
			return nil
		case errors.Is(err, ErrUnknownCommand):
			fmt.Fprintln(c.out, "Command not recognized, please try again.")
		case err != nil:
			fmt.Fprintln(c.out, "error:", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Console) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(c.commands))
	for _, cmd := range c.commands {
		items = append(items, readline.PcItem(cmd.Name))
	}
	return readline.NewPrefixCompleter(items...)
}

type scanLines struct {
	console *Console
	scanner *bufio.Scanner
}

func (s *scanLines) Readline() (string, error) {
	if s.console.prompt != "" {
		fmt.Fprint(s.console.out, s.console.prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// interruptible turns Ctrl-C on an empty line into EOF and otherwise
// discards the interrupted line.
type interruptible struct {
	rl *readline.Instance
}

func (i interruptible) Readline() (string, error) {
	line, err := i.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		if strings.TrimSpace(line) == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

// match finds the longest command name that prefixes the line, compared
// word by word and case-insensitively.
func (c *Console) match(line string) (Command, []string, bool) {
	fields := strings.Fields(line)

	var (
		best  Command
		words int
	)
	for _, cmd := range c.commands {
		name := strings.Fields(cmd.Name)
		if len(name) <= words || len(name) > len(fields) {
			continue
		}
		matched := true
		for i, w := range name {
			if !strings.EqualFold(fields[i], w) {
				matched = false
				break
			}
		}
		if matched {
			best, words = cmd, len(name)
		}
	}

	if words == 0 {
		return Command{}, nil, false
	}

	args := make([]string, 0, len(fields)-words)
	for _, a := range fields[words:] {
		if a = strings.TrimLeft(a, "-"); a != "" {
			args = append(args, a)
		}
	}
	return best, args, true
}

func (c *Console) help(context.Context, []string) error {
	tw := tabwriter.NewWriter(c.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tDESCRIPTION")
	for _, cmd := range c.commands {
		name := cmd.Name
		if cmd.Args != "" {
			name += " " + cmd.Args
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, cmd.Help)
	}
	return tw.Flush()
}

func (c *Console) exit(context.Context, []string) error {
	fmt.Fprintln(c.out, "Bye!")
	return ErrExit
}

func (c *Console) stats(ctx context.Context, _ []string) error {
	stats, err := c.inspector.Stats(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Store healthy\t%t\n", stats.Store.Healthy)
	fmt.Fprintf(tw, "Users\t%d\n", stats.Store.Records.Users)
	fmt.Fprintf(tw, "Tokens\t%d\n", stats.Store.Records.Tokens)
	fmt.Fprintf(tw, "Carts\t%d\n", stats.Store.Records.Carts)
	fmt.Fprintf(tw, "Orders\t%d\n", stats.Store.Records.Orders)
	fmt.Fprintf(tw, "Go version\t%s\n", stats.Runtime.GoVersion)
	fmt.Fprintf(tw, "Goroutines\t%d\n", stats.Runtime.NumGoroutine)
	fmt.Fprintf(tw, "CPUs\t%d\n", stats.Runtime.NumCPU)
	fmt.Fprintf(tw, "Heap in use\t%d bytes\n", stats.Runtime.MemAlloc)
	fmt.Fprintf(tw, "GC cycles\t%d\n", stats.Runtime.NumGC)
	return tw.Flush()
}

func (c *Console) listUsers(ctx context.Context, _ []string) error {
	return c.list(c.inspector.ListUsers(ctx))
}

func (c *Console) listCarts(ctx context.Context, _ []string) error {
	return c.list(c.inspector.ListCarts(ctx))
}

func (c *Console) listOrders(ctx context.Context, _ []string) error {
	return c.list(c.inspector.ListOrders(ctx))
}

func (c *Console) moreUserInfo(ctx context.Context, args []string) error {
	key, err := single(args, "email")
	if err != nil {
		return err
	}
	return c.show(c.inspector.GetUser(ctx, key))
}

func (c *Console) moreCartInfo(ctx context.Context, args []string) error {
	key, err := single(args, "cart id")
	if err != nil {
		return err
	}
	return c.show(c.inspector.GetCart(ctx, key))
}

func (c *Console) moreOrderInfo(ctx context.Context, args []string) error {
	key, err := single(args, "order id")
	if err != nil {
		return err
	}
	return c.show(c.inspector.GetOrder(ctx, key))
}

func (c *Console) list(keys []string, err error) error {
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(c.out, k)
	}
	fmt.Fprintf(c.out, "(%d total)\n", len(keys))
	return nil
}

func (c *Console) show(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func single(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one %s: %w", what, core.ErrInvalidInput)
	}
	return args[0], nil
}
