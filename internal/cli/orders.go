package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Apurer/dentallab-tracker/internal/app/api"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
)

func (a *app) listCommand() *cobra.Command {
	var params struct {
		text, status, clinic, sort string
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Long: `List orders, optionally filtered by free text, status and clinic.
Text matches clinic, contact, type and notes without regard to case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := domain.ParseSortKey(params.sort)
			if err != nil {
				return err
			}
			status, err := domain.ParseStatusFilter(params.status)
			if err != nil {
				return fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
			}
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				orders, err := c.Orders.Query(ctx, domain.Query{
					Text:   params.text,
					Status: status,
					Clinic: params.clinic,
					Sort:   key,
				})
				if err != nil {
					return err
				}
				a.printOrders(orders)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&params.text, "q", "", "Free text search")
	cmd.Flags().StringVar(&params.status, "status", domain.StatusAll, "Status (any letter case), or All")
	cmd.Flags().StringVar(&params.clinic, "clinic", "", "Exact clinic name")
	cmd.Flags().StringVar(&params.sort, "sort", string(domain.SortReceivedDate), "Sort key: receivedDate, dueDate, clinic or status")
	return cmd
}

func (a *app) printOrders(orders []domain.Order) {
	if len(orders) == 0 {
		a.println(i18n.NoOrders)
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		a.loc.T(i18n.ClinicName), a.loc.T(i18n.ContactColumn), a.loc.T(i18n.TypeColumn),
		a.loc.T(i18n.Received), a.loc.T(i18n.DueDate), a.loc.T(i18n.Status), a.loc.T(i18n.Notes))
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.Clinic, o.Contact, o.Type, o.ReceivedDate, o.DueDate, o.Status, o.Notes)
	}
	_ = tw.Flush()
}

// orderFlags binds the editable order fields to command flags.
type orderFlags struct {
	clinic, contact, kind, received, due, status, notes string
}

func (f *orderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.clinic, "clinic", "", "Clinic name")
	cmd.Flags().StringVar(&f.contact, "contact", "", "Contact email or phone")
	cmd.Flags().StringVar(&f.kind, "type", "", "Work type, e.g. Crown or Bridge")
	cmd.Flags().StringVar(&f.received, "received", "", "Received date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", "", "Status, defaults to Received")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free form notes")
}

func (f *orderFlags) fields() domain.Fields {
	return domain.Fields{
		Clinic:       f.clinic,
		Contact:      f.contact,
		Type:         f.kind,
		ReceivedDate: f.received,
		DueDate:      f.due,
		Status:       domain.Status(f.status),
		Notes:        f.notes,
	}
}

// apply overwrites the fields whose flags were set on cmd.
func (f *orderFlags) apply(cmd *cobra.Command, fields domain.Fields) domain.Fields {
	changed := cmd.Flags().Changed
	if changed("clinic") {
		fields.Clinic = f.clinic
	}
	if changed("contact") {
		fields.Contact = f.contact
	}
	if changed("type") {
		fields.Type = f.kind
	}
	if changed("received") {
		fields.ReceivedDate = f.received
	}
	if changed("due") {
		fields.DueDate = f.due
	}
	if changed("status") {
		fields.Status = domain.Status(f.status)
	}
	if changed("notes") {
		fields.Notes = f.notes
	}
	return fields
}

func (a *app) addCommand() *cobra.Command {
	var flags orderFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				order, err := c.Orders.Create(ctx, flags.fields())
				if err != nil {
					return err
				}
				a.println(i18n.OrderSaved, order.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("clinic")
	return cmd
}

func (a *app) editCommand() *cobra.Command {
	var flags orderFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an order",
		Long:  `Change fields of an order. Only the flags given are modified.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				current, err := c.Orders.Get(ctx, args[0])
				if err != nil {
					return err
				}
				order, err := c.Orders.Update(ctx, current.ID, flags.apply(cmd, current.Fields))
				if err != nil {
					return err
				}
				a.println(i18n.OrderSaved, order.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				order, err := c.Orders.SetStatus(ctx, args[0], domain.Status(args[1]))
				if err != nil {
					return err
				}
				a.println(i18n.OrderSaved, order.ID)
				return nil
			})
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				ok, err := a.confirm(a.loc.T(i18n.ConfirmDelete))
				if err != nil {
					return err
				}
				if !ok {
					a.println(i18n.Aborted)
					return nil
				}
				if err := c.Orders.Delete(ctx, args[0]); err != nil {
					return err
				}
				a.println(i18n.OrderDeleted, args[0])
				return nil
			})
		},
	}
}

func (a *app) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				ok, err := a.confirm(a.loc.T(i18n.ConfirmClear))
				if err != nil {
					return err
				}
				if !ok {
					a.println(i18n.Aborted)
					return nil
				}
				if err := c.Orders.Clear(ctx); err != nil {
					return err
				}
				a.println(i18n.OrdersCleared)
				return nil
			})
		},
	}
}

func (a *app) sampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Replace all orders with demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				if err := c.Orders.LoadSample(ctx); err != nil {
					return err
				}
				a.println(i18n.SampleLoaded)
				return nil
			})
		},
	}
}

func (a *app) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count orders per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				summary, err := c.Orders.Summary(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "%s\t%d\n", a.loc.T(i18n.TotalOrders), summary.Total)
				for _, sc := range summary.ByStatus {
					fmt.Fprintf(tw, "%s\t%d\n", sc.Status, sc.Count)
				}
				return tw.Flush()
			})
		},
	}
}

func (a *app) clinicsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clinics",
		Short: "List distinct clinic names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				clinics, err := c.Orders.Clinics(ctx)
				if err != nil {
					return err
				}
				for _, name := range clinics {
					fmt.Fprintln(a.out, name)
				}
				return nil
			})
		},
	}
}
