// Package commands holds CLI sub-commands mounted on the PocketBase root
// command.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"propertydesk/services"
)

// NewRentCommand returns the `rent` calculator command. It prints the
// monthly equivalent of each charge and the total monthly rent, plus the
// contract value when a date range is given.
func NewRentCommand(currency string) *cobra.Command {
	var (
		amount  string
		charges []string
		start   string
		end     string
	)

	cmd := &cobra.Command{
		Use:   "rent",
		Short: "Calculate total monthly rent from base rent and additional charges",
		Long: `Calculate total monthly rent from base rent and additional charges.

Charges are given as amount:frequency, where frequency is one of
weekly, biweekly, monthly, quarterly or annually.

  propertydesk rent --amount 1000 --charge 120:annually --charge 25:weekly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]services.Charge, 0, len(charges))
			for _, raw := range charges {
				c, err := parseChargeFlag(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, c)
			}

			summary := services.SummarizeLease(services.LeaseTerms{
				Rent:      amount,
				Charges:   parsed,
				StartDate: start,
				EndDate:   end,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base rent:       %s\n", services.FormatMoney(currency, summary.BaseRent))
			for _, c := range parsed {
				monthly := services.MonthlyEquivalent(services.ParseAmount(c.Amount), c.Frequency)
				fmt.Fprintf(out, "  %s %s:  %s/month\n", c.Amount, strings.ToLower(c.Frequency.Label()), services.FormatMoney(currency, monthly))
			}
			fmt.Fprintf(out, "Total monthly:   %s\n", services.FormatMoney(currency, summary.TotalMonthly))
			if start != "" || end != "" {
				fmt.Fprintf(out, "Term:            %d months\n", summary.TermMonths)
				fmt.Fprintf(out, "Contract value:  %s\n", services.FormatMoney(currency, summary.ContractValue))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "base monthly rent")
	cmd.Flags().StringArrayVar(&charges, "charge", nil, "additional charge as amount:frequency (repeatable)")
	cmd.Flags().StringVar(&start, "start", "", "lease start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "lease end date (YYYY-MM-DD)")
	return cmd
}

func parseChargeFlag(raw string) (services.Charge, error) {
	amount, freq, ok := strings.Cut(raw, ":")
	if !ok {
		return services.Charge{Amount: strings.TrimSpace(raw), Frequency: services.Monthly}, nil
	}
	f := services.Frequency(strings.ToLower(strings.TrimSpace(freq)))
	if f.Valid() {
		return services.Charge{Amount: strings.TrimSpace(amount), Frequency: f}, nil
	}
	return services.Charge{}, fmt.Errorf("unknown frequency %q in charge %q", freq, raw)
}
