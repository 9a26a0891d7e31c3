package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ekima-network/ekima/internal/daemon"
	"github.com/ekima-network/ekima/internal/domain"
)

func init() {
	leaderboardCmd.Flags().StringVar(&boardTimeframe, "timeframe", "all_time",
		"daily, weekly, monthly, or all_time")
	rootCmd.AddCommand(leaderboardCmd)
}

var boardTimeframe string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [xp|level|streak|achievements]",
	Short: "Show a ranked leaderboard",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	boardType := "xp"
	if len(args) > 0 {
		boardType = args[0]
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	board, err := d.Boards.Get(context.Background(),
		domain.LeaderboardType(boardType), domain.Timeframe(boardTimeframe))
	if err != nil {
		return err
	}

	if len(board.Entries) == 0 {
		fmt.Println("No ranked users yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSER\tVALUE")
	for _, e := range board.Entries {
		fmt.Fprintf(w, "%d\t%s\t%d\n", e.Rank, e.UserID, e.Value)
	}
	return w.Flush()
}
