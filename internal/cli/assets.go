package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
)

type priceCmd struct {
	asset string
	price string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "set the current USD price of an asset" }
func (*priceCmd) Usage() string {
	return `ledgerctl price -asset <asset id> -price <usd>

  The previous price is kept in the asset's price history.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset ID.")
	f.StringVar(&c.price, "price", "", "New USD price, with '.' as decimal separator.")
}

func (c *priceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.price == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		resp, err := client.UpdateAssetPrice(ctx, &ledgerv1.UpdateAssetPriceRequest{AssetId: c.asset, Price: c.price})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s\n", assetSymbol(resp.Asset), resp.Asset.CurrentPrice)
		return nil
	})
}

type priceAtCmd struct {
	asset string
	day   string
}

func (*priceAtCmd) Name() string     { return "price-at" }
func (*priceAtCmd) Synopsis() string { return "display the price recorded for an asset on a day" }
func (*priceAtCmd) Usage() string {
	return `ledgerctl price-at -asset <asset id> -day <dd/mm/yyyy>

  Prints the first price history entry recorded on that UTC day.
`
}

func (c *priceAtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset ID.")
	f.StringVar(&c.day, "day", "", "Day as dd/mm/yyyy.")
}

func (c *priceAtCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := time.ParseInLocation(dateLayout, c.day, time.UTC)
	if c.asset == "" || err != nil {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		resp, err := client.GetPriceAt(ctx, &ledgerv1.GetPriceAtRequest{AssetId: c.asset, Day: timestamppb.New(day)})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, resp.Entry.Price)
		return nil
	})
}

type movementsCmd struct {
	wallet string
	asset  string
	kind   string
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "list stored movements" }
func (*movementsCmd) Usage() string {
	return `ledgerctl movements [-wallet <wallet id>] [-asset <asset id>] [-kind <kind>]

  Lists movements in date order. The wallet filter matches either side of a
  transfer and the asset filter either side of a swap.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "wallet", "", "Only movements touching this wallet ID.")
	f.StringVar(&c.asset, "asset", "", "Only movements touching this asset ID.")
	f.StringVar(&c.kind, "kind", "", "Only movements of this kind.")
}

func (c *movementsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		resp, err := client.ListMovements(ctx, &ledgerv1.ListMovementsRequest{
			WalletId: c.wallet,
			AssetId:  c.asset,
			Kind:     c.kind,
		})
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "date\tkind\tquantity\treceived\tusd\tid")
		for _, m := range resp.Movements {
			date := ""
			if m.Date != nil {
				date = m.Date.AsTime().Format(dateLayout)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", date, m.Kind, m.Quantity, m.QuantityReceived, m.TotalUsd, m.Id)
		}
		return w.Flush()
	})
}
