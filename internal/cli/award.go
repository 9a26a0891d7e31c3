package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ekima-network/ekima/internal/daemon"
)

func init() {
	awardCmd.Flags().StringVar(&awardSource, "source", "", "Award source tag (looks up the multiplier table)")
	rootCmd.AddCommand(awardCmd)
}

var awardSource string

var awardCmd = &cobra.Command{
	Use:   "award USER AMOUNT",
	Short: "Grant XP to a user directly",
	Long: `Grant XP outside the activity pipeline — backfills and manual
corrections. Level rewards and achievement unlocks still apply.`,
	Args: cobra.ExactArgs(2),
	RunE: runAward,
}

func runAward(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Service.AwardXP(context.Background(), args[0], amount, awardSource)
	if err != nil {
		return err
	}

	fmt.Printf("Granted %d XP (total %d)\n", res.Award.Granted, res.Award.NewTotal)
	if res.Award.LeveledUp {
		fmt.Printf("Level up! Now level %d\n", res.Award.NewLevel)
	}
	for _, id := range res.Unlocked {
		fmt.Printf("Achievement unlocked: %s\n", id)
	}
	return nil
}
