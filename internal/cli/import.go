package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
)

type importCmd struct {
	kind   string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import movements from CSV exports" }
func (*importCmd) Usage() string {
	return `ledgerctl import -kind <DEPOSIT|WITHDRAWAL|TRANSFER|SWAP> [-n] <file.csv>...

  Sends each file to the server, which validates every row against the stored
  ledger. A file is stored only if all of its rows are valid. Files are
  imported in the order given and the first rejected file stops the command.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "", "Movement kind of every row in the files.")
	f.BoolVar(&c.dryRun, "n", false, "Validate only; nothing is stored.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.kind == "" || f.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	kind := strings.ToUpper(c.kind)

	return run(ctx, func(ctx context.Context, client LedgerClient) error {
		for _, path := range f.Args() {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			resp, err := client.ImportMovements(ctx, &ledgerv1.ImportMovementsRequest{
				Kind:   kind,
				Csv:    data,
				DryRun: c.dryRun,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			switch {
			case resp.Stored:
				fmt.Fprintf(stdout, "%s: stored %d movements\n", path, len(resp.Movements))
			case c.dryRun:
				fmt.Fprintf(stdout, "%s: %d movements valid (dry run)\n", path, len(resp.Movements))
			default:
				fmt.Fprintf(stdout, "%s: no movements\n", path)
			}
		}
		return nil
	})
}
