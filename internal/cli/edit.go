package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
)

// dateLayout matches the dd/mm/yyyy dates of the spreadsheet exports
const dateLayout = "02/01/2006"

type editCmd struct {
	id string

	date             string
	wallet           string
	destWallet       string
	asset            string
	destAsset        string
	quantity         string
	quantityReceived string
	unitPriceUSD     string
	unitPriceDestUSD string
	totalUSD         string
	fiat             string
	fiatAmount       string
	usdOnly          bool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "overwrite the fields of a stored movement" }
func (*editCmd) Usage() string {
	return `ledgerctl edit -id <movement id> [field flags]

  Fetches the movement, replaces the fields given as flags and stores the
  result. The kind of a movement cannot change. Outflows are checked against
  the position with the movement's current quantity added back.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Movement ID.")
	f.StringVar(&c.date, "date", "", "Date as dd/mm/yyyy.")
	f.StringVar(&c.wallet, "wallet", "", "Wallet ID (source wallet of a transfer).")
	f.StringVar(&c.destWallet, "dest-wallet", "", "Destination wallet ID of a transfer.")
	f.StringVar(&c.asset, "asset", "", "Asset ID (source asset of a swap).")
	f.StringVar(&c.destAsset, "dest-asset", "", "Destination asset ID of a swap.")
	f.StringVar(&c.quantity, "quantity", "", "Quantity (sent, for transfers and swaps).")
	f.StringVar(&c.quantityReceived, "received", "", "Quantity received by a transfer or swap.")
	f.StringVar(&c.unitPriceUSD, "unit-usd", "", "USD unit price (of the source asset of a swap).")
	f.StringVar(&c.unitPriceDestUSD, "dest-unit-usd", "", "USD unit price of the destination asset of a swap.")
	f.StringVar(&c.totalUSD, "total-usd", "", "USD total of a deposit or withdrawal.")
	f.StringVar(&c.fiat, "fiat", "", "Fiat currency ID of the alternate value.")
	f.StringVar(&c.fiatAmount, "fiat-amount", "", "Alternate fiat total.")
	f.BoolVar(&c.usdOnly, "usd-only", false, "Drop the alternate fiat value.")
}

func (c *editCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		listed, err := client.ListMovements(ctx, &ledgerv1.ListMovementsRequest{})
		if err != nil {
			return err
		}
		var current *ledgerv1.Movement
		for _, m := range listed.Movements {
			if m.Id == c.id {
				current = m
				break
			}
		}
		if current == nil {
			return fmt.Errorf("movement %s not found", c.id)
		}
		if err := c.apply(current); err != nil {
			return err
		}

		resp, err := client.UpdateMovement(ctx, &ledgerv1.UpdateMovementRequest{Movement: current})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %s updated\n", resp.Movement.Kind, resp.Movement.Id)
		return nil
	})
}

// apply overwrites the fields of m that were given as flags
func (c *editCmd) apply(m *ledgerv1.Movement) error {
	if c.date != "" {
		day, err := time.ParseInLocation(dateLayout, c.date, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected dd/mm/yyyy", c.date)
		}
		m.Date = timestamppb.New(day)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&m.WalletId, c.wallet)
	set(&m.DestWalletId, c.destWallet)
	set(&m.AssetId, c.asset)
	set(&m.DestAssetId, c.destAsset)
	set(&m.Quantity, c.quantity)
	set(&m.QuantityReceived, c.quantityReceived)
	set(&m.UnitPriceUsd, c.unitPriceUSD)
	set(&m.UnitPriceDestUsd, c.unitPriceDestUSD)
	set(&m.TotalUsd, c.totalUSD)
	if c.usdOnly {
		m.FiatId, m.FiatAmount = "", ""
	}
	set(&m.FiatId, c.fiat)
	set(&m.FiatAmount, c.fiatAmount)
	return nil
}
