package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/postgres"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/postgres/repository"
)

var journalCmd = &cobra.Command{
	Use:   "journal <roomId>",
	Short: "Print meeting journal of a room",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.New()
		if err != nil {
			log.Fatalf("could not load config: %v", err)
		}

		if !cfg.Postgres.Enabled() {
			log.Fatalf("postgres is not configured: set POSTGRES_URL or POSTGRES_HOST")
		}

		db, err := postgres.NewPostgres(cmd.Context(), cfg.Postgres.DSN())
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer db.Close()

		entries, err := repository.NewJournalRepo(db).ListByRoom(cmd.Context(), args[0])
		if err != nil {
			log.Fatalf("%v", err)
		}

		for _, e := range entries {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s\t%s\t%s\tparticipants=%d\n",
				e.CreatedAt.Format(time.RFC3339),
				e.Kind,
				e.Reason,
				e.ParticipantCount,
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
}
