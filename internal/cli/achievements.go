package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ekima-network/ekima/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List the achievement catalog",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRARITY\tXP\tGEMS\tREQUIREMENTS")
	for _, def := range d.Service.Engine().Definitions() {
		reqs := ""
		for i, r := range def.Requirements {
			if i > 0 {
				reqs += ", "
			}
			reqs += r.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			def.ID, def.Name, def.Category, def.Rarity, def.RewardXP, def.RewardGems, reqs)
	}
	return w.Flush()
}
