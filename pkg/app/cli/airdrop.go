package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/glipgg/btx-ops/pkg/airdrop"
	"github.com/glipgg/btx-ops/pkg/airdrop/service"
	"github.com/glipgg/btx-ops/pkg/airdrop/store"
	"github.com/glipgg/btx-ops/pkg/app/monitor"
	"github.com/glipgg/btx-ops/pkg/config"
	"github.com/glipgg/btx-ops/pkg/pgutil"
)

// ErrSnapshotNotConfigured is returned when no snapshot path is given
var ErrSnapshotNotConfigured = errors.New("snapshot path is not configured")

func newAirdropCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Plan and submit batched token airdrops from a holder snapshot",
	}
	cmd.PersistentFlags().String("snapshot", "", "snapshot path (defaults to airdrop.snapshot)")
	cmd.PersistentFlags().Int("offset", -1, "start offset in the filtered holder list (defaults to airdrop.start_offset)")
	cmd.PersistentFlags().Int("batch-size", 0, "maximum recipients per batch (defaults to airdrop.max_batch_size)")

	cmd.AddCommand(
		newAirdropPlanCommand(rt),
		newAirdropRunCommand(rt),
		newAirdropStatusCommand(rt),
	)
	return cmd
}

// applyAirdropFlags lets command line flags override the airdrop section
func applyAirdropFlags(cmd *cobra.Command, cfg *config.AirdropConfig) error {
	flags := cmd.Flags()
	if path, _ := flags.GetString("snapshot"); path != "" {
		cfg.Snapshot = path
	}
	if offset, _ := flags.GetInt("offset"); offset >= 0 {
		cfg.StartOffset = offset
	}
	if size, _ := flags.GetInt("batch-size"); size > 0 {
		cfg.MaxBatchSize = size
	}
	if cfg.Snapshot == "" {
		return ErrSnapshotNotConfigured
	}
	return nil
}

// airdropOptions converts the airdrop section into builder options
func airdropOptions(cfg config.AirdropConfig) (airdrop.Options, error) {
	minBalance, err := airdrop.ParseBalance(cfg.MinBalance)
	if err != nil {
		return airdrop.Options{}, fmt.Errorf("airdrop.min_balance: %w", err)
	}
	return airdrop.Options{
		MinBalance:       minBalance,
		MaxBatchSize:     cfg.MaxBatchSize,
		StartOffset:      cfg.StartOffset,
		Decimals:         cfg.Decimals,
		Exclude:          cfg.Blacklist,
		StrictAddresses:  cfg.StrictAddresses,
		TruncateBalances: cfg.TruncateBalances,
	}, nil
}

func loadAirdropInput(cmd *cobra.Command, rt *runtime) (*airdrop.Snapshot, airdrop.Options, error) {
	acfg := rt.cfg.Airdrop
	if err := applyAirdropFlags(cmd, &acfg); err != nil {
		return nil, airdrop.Options{}, err
	}
	opts, err := airdropOptions(acfg)
	if err != nil {
		return nil, airdrop.Options{}, err
	}
	snapshot, err := airdrop.LoadSnapshot(acfg.Snapshot, acfg.SnapshotFormat)
	if err != nil {
		return nil, airdrop.Options{}, err
	}
	return snapshot, opts, nil
}

func newAirdropPlanCommand(rt *runtime) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the batches a run would submit without touching the chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, opts, err := loadAirdropInput(cmd, rt)
			if err != nil {
				return err
			}
			plan, err := airdrop.Build(snapshot.Holders, opts)
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), snapshot, plan, opts, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every recipient")
	return cmd
}

func printPlan(w io.Writer, snapshot *airdrop.Snapshot, plan *airdrop.Plan, opts airdrop.Options, verbose bool) error {
	fmt.Fprintf(w, "snapshot:   %s (%d holders)\n", snapshot.Hash.Hex(), len(snapshot.Holders))
	fmt.Fprintf(w, "recipients: %d eligible, %d from offset %d\n", len(plan.Recipients), plan.Remaining(), opts.StartOffset)
	fmt.Fprintf(w, "total:      %s\n", airdrop.FormatUnits(plan.Total(), opts.Decimals))

	dropped := make(map[airdrop.DropReason]int)
	for _, d := range plan.Dropped {
		dropped[d.Reason]++
	}
	for _, reason := range []airdrop.DropReason{
		airdrop.DropInvalidAddress,
		airdrop.DropBelowThreshold,
		airdrop.DropExcluded,
		airdrop.DropDuplicate,
		airdrop.DropZeroAmount,
	} {
		if n := dropped[reason]; n > 0 {
			fmt.Fprintf(w, "dropped:    %d %s\n", n, reason)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tOFFSET\tSIZE\tAMOUNT")
	for _, b := range plan.Batches {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", b.Index, b.Offset, b.Size(), airdrop.FormatUnits(b.Total(), opts.Decimals))
		if !verbose {
			continue
		}
		for i, addr := range b.Addresses {
			fmt.Fprintf(tw, "\t%d\t%s\t%s\n", b.Offset+i, addr.Hex(), airdrop.FormatUnits(b.Amounts[i], opts.Decimals))
		}
	}
	return tw.Flush()
}

func newAirdropRunCommand(rt *runtime) *cobra.Command {
	var (
		submit bool
		name   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate or submit every remaining batch, checkpointing progress in Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			snapshot, opts, err := loadAirdropInput(cmd, rt)
			if err != nil {
				return err
			}

			mode := service.Mode(rt.cfg.Airdrop.Mode)
			if submit {
				mode = service.ModeSubmit
			}
			if rt.estimate() {
				mode = service.ModeEstimate
			}
			if name == "" {
				name = rt.cfg.Airdrop.RunName
			}

			contract, err := contractAddress("airdrop", rt.cfg.Contracts.Airdrop)
			if err != nil {
				return err
			}
			client, err := rt.client(ctx)
			if err != nil {
				return err
			}
			if err := requireCode(cmd, client, contract); err != nil {
				return err
			}
			distributor, err := service.NewDistributor(client, contract)
			if err != nil {
				return err
			}

			var st store.Store
			if mode == service.ModeSubmit {
				db, err := pgutil.ConnectDB(ctx, &rt.cfg.Database, rt.logger)
				if err != nil {
					return err
				}
				rt.onClose(func() { _ = db.Close() })
				st = store.NewStore(db)
			}

			mon := monitor.NewServer(rt.cfg.Monitoring, rt.logger)
			stop := mon.Start(ctx)
			defer func() { _ = stop() }()
			mon.SetReady(true)

			svc := service.NewLog(service.NewService(st, distributor, rt.logger), rt.logger)
			res, err := svc.Run(ctx, &service.Request{
				Name:     name,
				Snapshot: snapshot,
				Options:  opts,
				Mode:     mode,
			})
			if res != nil {
				printRunResult(out, res, opts.Decimals)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&submit, "submit", false, "send transactions (overrides airdrop.mode)")
	cmd.Flags().StringVar(&name, "name", "", "checkpoint name (defaults to airdrop.run_name)")
	return cmd
}

func printRunResult(w io.Writer, res *service.Result, decimals int32) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tOFFSET\tSIZE\tAMOUNT\tGAS\tTX")
	for _, b := range res.Batches {
		tx := "-"
		if b.TxHash != (common.Hash{}) {
			tx = b.TxHash.Hex()
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%d\t%s\n", b.Index, b.Offset, b.Size, airdrop.FormatUnits(b.Amount, decimals), b.Gas, tx)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "batches: %d, gas: %d\n", len(res.Batches), res.GasTotal)
	if res.Run != nil {
		fmt.Fprintf(w, "run %s: next offset %d of %d (%s)\n", res.Run.Name, res.Run.NextOffset, res.Run.Total, res.Run.Status)
	}
}

func newAirdropStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status [name]",
		Short: "Show the checkpoint of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := rt.cfg.Airdrop.RunName
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				return service.ErrRunNameRequired
			}

			db, err := pgutil.ConnectDB(ctx, &rt.cfg.Database, rt.logger)
			if err != nil {
				return err
			}
			rt.onClose(func() { _ = db.Close() })

			svc := service.NewLog(service.NewService(store.NewStore(db), nil, rt.logger), rt.logger)
			st, err := svc.Status(ctx, name)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printStatus(w io.Writer, st *service.Status) {
	run := st.Run
	fmt.Fprintf(w, "run:      %s (%s)\n", run.Name, run.ID)
	fmt.Fprintf(w, "contract: %s\n", run.Contract)
	fmt.Fprintf(w, "snapshot: %s\n", run.SnapshotHash)
	fmt.Fprintf(w, "progress: %d/%d (%s)\n", run.NextOffset, run.Total, run.Status)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tSIZE\tNONCE\tSTATUS\tTX\tERROR")
	for _, b := range st.Batches {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\n", b.Offset, b.Size, b.Nonce, b.Status, b.TxHash, b.Error)
	}
	_ = tw.Flush()
}
