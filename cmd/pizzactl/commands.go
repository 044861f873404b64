// AngelaMos | 2026
// commands.go

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/menu"
	"github.com/carterperez-dev/pizzeria/internal/store"
	"github.com/carterperez-dev/pizzeria/internal/sweeper"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "pizzactl",
		Short:         "Operator tooling for the pizzeria backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to config file")
	root.SetOut(a.out)

	root.AddCommand(shellCmd(a))
	root.AddCommand(statsCmd(a))
	root.AddCommand(inspectCmd(a, "users", "user", "email"))
	root.AddCommand(inspectCmd(a, "carts", "cart", "cart id"))
	root.AddCommand(inspectCmd(a, "orders", "order", "order id"))
	root.AddCommand(menuCmd(a))
	root.AddCommand(sweepCmd(a))

	return root
}

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive operator console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.console()

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return c.RunInteractive(cmd.Context())
			}

			c.SetPrompt("")
			return c.Run(cmd.Context(), in)
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and runtime statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.console().Execute(cmd.Context(), "stats")
		},
	}
}

// inspectCmd builds "<plural> list" and "<plural> show <key>", backed by the
// console's "list <plural>" and "more <singular> info" commands.
func inspectCmd(a *app, plural, singular, keyName string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   plural,
		Short: fmt.Sprintf("Inspect stored %s", plural),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List every %s", singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.console().Execute(cmd.Context(), "list "+plural)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   fmt.Sprintf("show <%s>", keyName),
		Short: fmt.Sprintf("Show one %s", singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.console().Execute(cmd.Context(), fmt.Sprintf("more %s info %s", singular, args[0]))
		},
	})

	return cmd
}

func menuCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage the menu record",
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Write the menu if none exists yet",
		Long: `Write the menu record. Without --file the built-in menu is used.
The file must hold a JSON array of {"name", "price"} objects.
An existing menu is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}

			items := menu.DefaultItems
			if path != "" {
				if items, err = loadMenuFile(path); err != nil {
					return err
				}
			}

			svc := menu.NewService(menu.NewRepository(a.backend.Store), a.logger)
			if err := svc.Seed(cmd.Context(), items); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "menu seeded with %d items\n", len(items))
			return nil
		},
	}
	seed.Flags().StringP("file", "f", "", "JSON file with the menu items")

	cmd.AddCommand(seed)
	return cmd
}

func sweepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired tokens once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := sweeper.New(
				auth.NewRepository(a.backend.Store),
				store.NewKeyLocker(),
				a.cfg.Sweeper.Interval,
				a.logger,
			)

			res := s.Sweep(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d, removed %d, failed %d\n",
				res.Scanned, res.Removed, res.Failed)

			if res.Failed > 0 {
				return fmt.Errorf("%d tokens could not be swept", res.Failed)
			}
			return nil
		},
	}
}

func loadMenuFile(path string) ([]menu.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	var items []menu.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse menu file %s: %w", path, err)
	}
	return items, nil
}
