package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers in store order",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := svc.WaitCustomers(cmd.Context())
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				fmt.Println("no customers")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tFIRST\tLAST\tBUSINESS")
			for _, c := range customers {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Email, c.FirstName, c.LastName, c.BusinessName)
			}
			return tw.Flush()
		},
	}
}
