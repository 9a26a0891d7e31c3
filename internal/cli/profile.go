package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekima-network/ekima/internal/daemon"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile USER",
	Short: "Show a user's gamification profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Service.Profile(context.Background(), args[0])
	if err != nil {
		return err
	}

	curve := d.Service.Curve()
	level := curve.Level(p.TotalXP)

	fmt.Printf("User:      %s\n", p.UserID)
	fmt.Printf("Level:     %d (%d XP, %d into level)\n", level, p.TotalXP, p.TotalXP%curve.XPPerLevel)
	fmt.Printf("Gems:      %d\n", p.Gems)
	fmt.Printf("Coins:     %d\n", p.Coins)
	fmt.Printf("Streak:    %d days (longest %d)\n", p.CurrentStreak, p.LongestStreak)
	fmt.Printf("Unlocked:  %d achievements\n", len(p.Achievements))
	if !p.LastActivity.IsZero() {
		fmt.Printf("Last seen: %s\n", p.LastActivity.Format("2006-01-02"))
	}
	return nil
}
