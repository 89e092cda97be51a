package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"sitesync-backend/models"
	"sitesync-backend/services"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the built-in work unit catalog without touching a database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var units []models.WorkUnit
		for _, line := range services.DefaultDescriptors {
			parsed, err := services.ParseDescriptor(line)
			if err != nil {
				return err
			}
			units = append(units, parsed...)
		}

		professionsOnly, _ := cmd.Flags().GetBool("professions")
		if professionsOnly {
			seen := map[string]bool{}
			var names []string
			for _, u := range units {
				if !seen[u.Profession] {
					seen[u.Profession] = true
					names = append(names, u.Profession)
				}
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTASK\tQUANTITY\tPROFESSION")
		for i, u := range units {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, u.Describe(), u.Quantity, u.Profession)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolP("professions", "p", false, "print only the distinct professions")
}
