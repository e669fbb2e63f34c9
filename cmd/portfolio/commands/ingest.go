package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trogers1052/portfolio-analytics/internal/kafka"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Consume PRICE_BAR events into the price history table",
	Long: `Run the Kafka price consumer until interrupted.

Each PRICE_BAR event on KAFKA_PRICE_TOPIC is upserted into price_data_daily,
where trend and risk analysis can read it when DB_ENABLED is set. Requires
DB_ENABLED=true.`,
	RunE: runIngest,
}

var ingestRetain time.Duration

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().DurationVar(&ingestRetain, "retain", 0, "delete bars older than this before consuming (0 keeps everything)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.db == nil {
		return errors.New("ingest requires DB_ENABLED=true")
	}

	if ingestRetain > 0 {
		cutoff := time.Now().UTC().Add(-ingestRetain)
		deleted, err := a.db.DeletePriceDataOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		a.log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned old price bars")
	}

	consumer := kafka.NewPriceConsumer(a.cfg.Kafka.Brokers, a.cfg.Kafka.PriceTopic, a.cfg.Kafka.GroupID, a.db, a.log)
	defer consumer.Close()
	if a.cache != nil {
		consumer.OnStored(a.cache.Invalidate)
	}

	if err := consumer.Start(ctx); err != nil {
		return fmt.Errorf("price consumer failed: %w", err)
	}
	return nil
}
