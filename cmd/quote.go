package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stockgrid/config"
	"github.com/etnz/stockgrid/quote"
	"github.com/google/subcommands"
)

// formatter returns the money formatter of the configuration.
func formatter(cfg *config.Config) quote.Formatter {
	return quote.Formatter{Symbol: cfg.Display.CurrencySymbol, Currency: cfg.Display.Currency, Decimals: cfg.Display.PriceDecimals}
}

// quoteCmd prints the last price of a company.
type quoteCmd struct {
	companyFlags
	snapshot string
	symbol   string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the last price and change of a stock" }
func (*quoteCmd) Usage() string {
	return `sgrid quote -snapshot <file> (-symbol <symbol> | -company <name> | -code <code>)

  Reads the quote of the symbol in a provider snapshot file and prints the last
  price, and the change since the previous close.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	c.companyFlags.SetFlags(f)
	f.StringVar(&c.snapshot, "snapshot", "", "Quote snapshot file (JSON)")
	f.StringVar(&c.symbol, "symbol", "", "Provider symbol, like 1155.KL")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, err := setup()
	if err != nil {
		return fail("loading configuration", err)
	}
	if c.snapshot == "" {
		fmt.Fprintln(stderr, "Error: -snapshot is required")
		return subcommands.ExitUsageError
	}
	symbol := c.symbol
	if symbol == "" {
		if !c.selected() {
			fmt.Fprintln(stderr, "Error: one of -symbol, -company or -code is required")
			return subcommands.ExitUsageError
		}
		l, err := c.load(cfg)
		if err != nil {
			return fail("reading listing", err)
		}
		co, err := c.resolve(l)
		if err != nil {
			return fail("resolving company", err)
		}
		symbol = co.Symbol(cfg.Listing.ExchangeSuffix)
	}

	res := quote.LoadFile(c.snapshot, symbol)
	logger.Debug().Str("symbol", symbol).Stringer("status", res.Status).Msg("quote")
	switch res.Status {
	case quote.NotFound:
		fmt.Fprintf(stderr, "Error: no quote for %s: %v\n", symbol, res.Err)
		return subcommands.ExitFailure
	case quote.TransientError:
		fmt.Fprintf(stderr, "Error: quote unavailable, retry later: %v\n", res.Err)
		return subcommands.ExitFailure
	}

	q, fm := res.Quote, formatter(cfg)
	name := q.Name
	if name == "" {
		name = q.Symbol
	}
	fmt.Fprintf(stdout, "%s (%s)\n", name, q.Symbol)
	fmt.Fprintf(stdout, "Last Price: %s\n", fm.Money(q.Price))
	if change := fm.Change(q); change != "" {
		fmt.Fprintf(stdout, "Change: %s\n", change)
	}
	return subcommands.ExitSuccess
}
