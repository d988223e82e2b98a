package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-customer-directory/customer"
)

func addCmd() *cobra.Command {
	var input customer.NewCustomerInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Create(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Printf("created %s\n", input.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&input.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&input.BusinessName, "business", "", "business name (optional)")
	cmd.Flags().StringVar(&input.Email, "email", "", "email, the natural key")
	return cmd
}
