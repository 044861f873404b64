// AngelaMos | 2026
// console_test.go

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pizzeria/internal/admin"
	"github.com/carterperez-dev/pizzeria/internal/cart"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/order"
	"github.com/carterperez-dev/pizzeria/internal/user"
)

type fakeInspector struct {
	calls []string
}

func (f *fakeInspector) Stats(context.Context) (*admin.SystemStats, error) {
	f.calls = append(f.calls, "stats")
	return &admin.SystemStats{
		Store: admin.StoreStatus{Healthy: true, Records: admin.RecordCounts{Users: 3, Orders: 7}},
	}, nil
}

func (f *fakeInspector) ListUsers(context.Context) ([]string, error) {
	f.calls = append(f.calls, "users")
	return []string{"al@example.com", "zoe@example.com"}, nil
}

func (f *fakeInspector) GetUser(_ context.Context, email string) (*user.UserResponse, error) {
	f.calls = append(f.calls, "user:"+email)
	if email != "al@example.com" {
		return nil, core.ErrNotFound
	}
	return &user.UserResponse{Email: email, FirstName: "Al"}, nil
}

func (f *fakeInspector) ListCarts(context.Context) ([]string, error) {
	f.calls = append(f.calls, "carts")
	return []string{}, nil
}

func (f *fakeInspector) GetCart(_ context.Context, id string) (*cart.Cart, error) {
	f.calls = append(f.calls, "cart:"+id)
	return &cart.Cart{ID: id}, nil
}

func (f *fakeInspector) ListOrders(context.Context) ([]string, error) {
	f.calls = append(f.calls, "orders")
	return []string{"o1"}, nil
}

func (f *fakeInspector) GetOrder(_ context.Context, id string) (*order.Order, error) {
	f.calls = append(f.calls, "order:"+id)
	return &order.Order{ID: id, ChargeID: "ch_9"}, nil
}

func TestExecute_Dispatch(t *testing.T) {
	tests := []struct {
		line string
		call string
	}{
		{"stats", "stats"},
		{"list users", "users"},
		{"LIST Carts", "carts"},
		{"list orders", "orders"},
		{"more user info al@example.com", "user:al@example.com"},
		{"more user info --al@example.com", "user:al@example.com"},
		{"more cart info c1", "cart:c1"},
		{"  more order info   o1 ", "order:o1"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			fake := &fakeInspector{}
			c := New(fake, &bytes.Buffer{})

			require.NoError(t, c.Execute(context.Background(), tt.line))
			assert.Equal(t, []string{tt.call}, fake.calls)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	fake := &fakeInspector{}
	c := New(fake, &bytes.Buffer{})
	ctx := context.Background()

	assert.ErrorIs(t, c.Execute(ctx, "list pizzas"), ErrUnknownCommand)
	assert.ErrorIs(t, c.Execute(ctx, "more user info"), core.ErrInvalidInput)
	assert.ErrorIs(t, c.Execute(ctx, "more user info a b"), core.ErrInvalidInput)
	assert.ErrorIs(t, c.Execute(ctx, "more user info ghost@example.com"), core.ErrNotFound)
	assert.ErrorIs(t, c.Execute(ctx, "exit"), ErrExit)
}

func TestExecute_Output(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(&fakeInspector{}, out)
	ctx := context.Background()

	require.NoError(t, c.Execute(ctx, "list users"))
	assert.Contains(t, out.String(), "zoe@example.com")
	assert.Contains(t, out.String(), "(2 total)")

	out.Reset()
	require.NoError(t, c.Execute(ctx, "more order info o1"))
	assert.Contains(t, out.String(), `"charge_id": "ch_9"`)

	out.Reset()
	require.NoError(t, c.Execute(ctx, "man"))
	for _, cmd := range c.Commands() {
		assert.Contains(t, out.String(), cmd.Name)
	}
}

func TestRun(t *testing.T) {
	fake := &fakeInspector{}
	out := &bytes.Buffer{}
	c := New(fake, out)

	input := strings.Join([]string{
		"help",
		"",
		"stats",
		"bogus",
		"more cart info",
		"list orders",
		"exit",
		"list users",
	}, "\n")

	require.NoError(t, c.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, []string{"stats", "orders"}, fake.calls, "nothing runs after exit")
	assert.Contains(t, out.String(), "Command not recognized, please try again.")
	assert.Contains(t, out.String(), "error: expected exactly one cart id")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRun_EOF(t *testing.T) {
	fake := &fakeInspector{}
	c := New(fake, &bytes.Buffer{})

	require.NoError(t, c.Run(context.Background(), strings.NewReader("list carts")))
	assert.Equal(t, []string{"carts"}, fake.calls)
}

type scriptedLines struct {
	lines []string
	err   error
}

func (s *scriptedLines) Readline() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestLoop(t *testing.T) {
	fake := &fakeInspector{}
	c := New(fake, &bytes.Buffer{})

	lines := &scriptedLines{lines: []string{"  list   USERS ", "more order info --o1"}}
	require.NoError(t, c.Loop(context.Background(), lines))
	assert.Equal(t, []string{"users", "order:o1"}, fake.calls)
}

func TestLoop_ReaderError(t *testing.T) {
	errBroken := errors.New("terminal gone")
	c := New(&fakeInspector{}, &bytes.Buffer{})

	err := c.Loop(context.Background(), &scriptedLines{err: errBroken})
	assert.ErrorIs(t, err, errBroken)
}

func TestLoop_StopsOnCanceledContext(t *testing.T) {
	fake := &fakeInspector{}
	c := New(fake, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Loop(ctx, &scriptedLines{lines: []string{"list carts", "list orders"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"carts"}, fake.calls)
}

func TestCompleter(t *testing.T) {
	c := New(&fakeInspector{}, &bytes.Buffer{})

	pc := c.completer()
	assert.Len(t, pc.GetChildren(), len(c.Commands()))
}
