// Package cli implements the non-interactive catalog commands: listing,
// fetching, creating, updating and deleting products, and reading the
// activity log.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studiowebux/catalog/internal/api"
	"github.com/studiowebux/catalog/internal/filter"
	"github.com/studiowebux/catalog/internal/history"
	"github.com/studiowebux/catalog/internal/types"
	"github.com/studiowebux/catalog/internal/view"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetConcurrency bounds parallel fetches in Get
const GetConcurrency = 4

var (
	// ErrCancelled is returned when the user declines a confirmation
	ErrCancelled = errors.New("cancelled by user")

	// ErrNameRequired is returned by Create without a name
	ErrNameRequired = errors.New("product name is required")

	// ErrPriceRequired is returned by Create without a price
	ErrPriceRequired = errors.New("product price is required")
)

// Env carries the client and streams every command works with
type Env struct {
	Client *api.Client
	Logger *zap.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e Env) stdin() io.Reader {
	if e.Stdin == nil {
		return os.Stdin
	}
	return e.Stdin
}

func (e Env) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}

// ListOptions controls List
type ListOptions struct {
	Output string // json, yaml, text
	Search string // fuzzy match on names
	Filter string // JMESPath filter expression
	Query  string // JMESPath query or $(shell command)
}

// List prints every product
func List(ctx context.Context, env Env, opts ListOptions) error {
	products, err := env.Client.List(ctx)
	if err != nil {
		return err
	}
	products = view.FilterProducts(products, opts.Search)

	format := resolveFormat(env.Stdout, opts.Output)
	if opts.Filter == "" && opts.Query == "" {
		return writeProducts(env.Stdout, format, products)
	}

	result, err := filter.Apply(products, opts.Filter, opts.Query)
	if err != nil {
		return err
	}
	return writeValue(env.Stdout, format, result)
}

// Get fetches ids concurrently and prints them in argument order
func Get(ctx context.Context, env Env, ids []string, output string) error {
	if len(ids) == 0 {
		return api.ErrEmptyID
	}

	products := make([]types.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(GetConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			p, err := env.Client.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("product %q: %w", strings.TrimSpace(id), err)
			}
			products[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	format := resolveFormat(env.Stdout, output)
	if len(products) == 1 {
		return writeProduct(env.Stdout, format, products[0])
	}
	return writeProducts(env.Stdout, format, products)
}

// ProductFields are the raw flag values for create and update. A nil field
// was not given on the command line.
type ProductFields struct {
	Name        *string
	Description *string
	Price       *string
}

// Create adds a product from flags
func Create(ctx context.Context, env Env, fields ProductFields, output string) error {
	if fields.Name == nil || strings.TrimSpace(*fields.Name) == "" {
		return ErrNameRequired
	}
	if fields.Price == nil || strings.TrimSpace(*fields.Price) == "" {
		return ErrPriceRequired
	}

	input, err := view.BuildInput(deref(fields.Name), deref(fields.Description), deref(fields.Price))
	if err != nil {
		return err
	}

	product, err := env.Client.Create(ctx, input)
	if err != nil {
		return err
	}
	env.logger().Info("product created", zap.Int64("id", product.ID))

	return writeProduct(env.Stdout, resolveFormat(env.Stdout, output), *product)
}

// Update changes the given fields of product id; the rest keep their
// current values
func Update(ctx context.Context, env Env, id string, fields ProductFields, output string) error {
	current, err := env.Client.Get(ctx, id)
	if err != nil {
		return err
	}

	form := view.NewEditForm(*current)
	name, description, price := form.Name, form.Description, form.Price
	if fields.Name != nil {
		name = *fields.Name
	}
	if fields.Description != nil {
		description = *fields.Description
	}
	if fields.Price != nil {
		price = *fields.Price
	}

	input, err := view.BuildInput(name, description, price)
	if err != nil {
		return err
	}

	product, err := env.Client.Update(ctx, current.ID, input)
	if err != nil {
		return err
	}
	env.logger().Info("product updated", zap.Int64("id", product.ID))

	return writeProduct(env.Stdout, resolveFormat(env.Stdout, output), *product)
}

// Delete removes product id after confirmation unless yes is set
func Delete(ctx context.Context, env Env, id string, yes bool) error {
	product, err := env.Client.Get(ctx, id)
	if err != nil {
		return err
	}

	if !yes {
		prompt := fmt.Sprintf("Delete product %d (%s)? [y/N]: ", product.ID, product.Name)
		ok, err := confirm(env.stdin(), env.stderr(), prompt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	if err := env.Client.Delete(ctx, product.ID); err != nil {
		return err
	}
	env.logger().Info("product deleted", zap.Int64("id", product.ID))

	fmt.Fprintln(env.Stdout, view.MsgDeleted)
	return nil
}

// HistoryOptions controls History
type HistoryOptions struct {
	Limit  int
	Clear  bool
	Stats  bool // per-endpoint summary instead of entries
	Output string
}

// History prints or clears the activity log
func History(ctx context.Context, env Env, mgr *history.Manager, opts HistoryOptions) error {
	if opts.Clear {
		if err := mgr.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, "Activity log cleared")
		return nil
	}

	format := resolveFormat(env.Stdout, opts.Output)
	if opts.Stats {
		stats, err := mgr.Stats(ctx)
		if err != nil {
			return err
		}
		return writeStats(env.Stdout, format, stats)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = history.DefaultLimit
	}
	calls, err := mgr.Recent(ctx, limit)
	if err != nil {
		return err
	}

	return writeCalls(env.Stdout, format, calls)
}

// confirm asks a yes/no question; anything but y or yes declines
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
