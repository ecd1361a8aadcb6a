package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display holdings, gains and the gain distribution" }
func (*portfolioCmd) Usage() string {
	return `ledgerctl portfolio

  Prints every wallet still holding assets with the valuation of each asset,
  followed by the portfolio totals and the gain distribution.
`
}

func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (*portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		resp, err := client.GetPortfolio(ctx, &ledgerv1.GetPortfolioRequest{})
		if err != nil {
			return err
		}
		printPortfolio(resp)
		return nil
	})
}

func printPortfolio(resp *ledgerv1.GetPortfolioResponse) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, wd := range resp.Wallets {
		fmt.Fprintf(w, "%s\t\t\t\t\t\n", walletLabel(wd.Wallet))
		fmt.Fprintln(w, "asset\tbalance\tinvested\tvalue\tgain\tgain %\t")
		for _, d := range wd.Assets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
				assetSymbol(d.Asset), d.CurrentBalance, d.InvestedFiat, d.CurrentValueFiat, d.Gain, d.GainPercent)
		}
		fmt.Fprintf(w, "total\t\t%s\t%s\t%s\t%s\t\n", wd.TotalInvested, wd.TotalCurrentValue, wd.TotalGain, wd.GainPercent)
		fmt.Fprintln(w, "\t\t\t\t\t\t")
	}
	w.Flush()

	if s := resp.Summary; s != nil {
		fmt.Fprintf(stdout, "invested %s, value %s, sold %s, gain %s (%s%%)\n",
			s.TotalInvestedUsd, s.TotalCurrentValueUsd, s.TotalSoldUsd, s.TotalGain, s.GainPercent)
	}

	if len(resp.Distribution) == 0 {
		return
	}
	w = tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "asset\tgain\tshare %\t")
	for _, share := range resp.Distribution {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", assetSymbol(share.Asset), share.Gain, share.Percent)
	}
	w.Flush()
}

func walletLabel(w *ledgerv1.Wallet) string {
	if w == nil {
		return "?"
	}
	return fmt.Sprintf("%s (%s)", w.Name, w.Symbol)
}

func assetSymbol(a *ledgerv1.Asset) string {
	if a == nil {
		return "?"
	}
	return a.Symbol
}

type balanceCmd struct {
	wallet string
	asset  string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the available quantity of an asset in a wallet" }
func (*balanceCmd) Usage() string {
	return `ledgerctl balance -wallet <wallet id> -asset <asset id>
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "wallet", "", "Wallet ID.")
	f.StringVar(&c.asset, "asset", "", "Asset ID.")
}

func (c *balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.wallet == "" || c.asset == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		resp, err := client.GetBalance(ctx, &ledgerv1.GetBalanceRequest{WalletId: c.wallet, AssetId: c.asset})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, resp.Available)
		return nil
	})
}
