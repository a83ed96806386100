package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Apurer/dentallab-tracker/internal/app/api"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/interchange"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
)

func (a *app) exportCommand() *cobra.Command {
	var (
		format  string
		out     string
		archive bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all orders to csv or xlsx",
		Long: `Export all orders. The file is named dentallab_orders_<date>.<ext>
unless --out is given; --out - writes to stdout. With --archive the export
is stored in the configured archive instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := interchange.ParseFormat(format)
			if err != nil {
				return err
			}
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				if archive {
					object, err := c.Files.ArchiveExport(ctx, parsed)
					if err != nil {
						return err
					}
					a.println(i18n.ArchivedAs, object.Key)
					return nil
				}
				file, err := c.Files.Export(ctx, parsed)
				if err != nil {
					return err
				}
				if out == "-" {
					_, err := a.out.Write(file.Data)
					return err
				}
				path := out
				if path == "" {
					path = file.Name
				}
				if err := os.WriteFile(path, file.Data, 0o644); err != nil {
					return err
				}
				a.println(i18n.ExportWritten, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", string(interchange.FormatCSV), "File format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, - for stdout")
	cmd.Flags().BoolVar(&archive, "archive", false, "Store the export in the archive")
	return cmd
}

func (a *app) importCommand() *cobra.Command {
	var archiveKey string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import orders from a csv file",
		Long: `Import orders from a csv file, or stdin when the file is - or
omitted. Imported orders are placed before existing ones and replace
orders with the same id. With --archive-key the file is read from the
archive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				var (
					report interchange.ImportReport
					err    error
				)
				if archiveKey != "" {
					report, err = c.Files.ImportArchived(ctx, archiveKey)
				} else {
					var r io.ReadCloser
					r, err = a.openInput(args)
					if err == nil {
						report, err = c.Files.ImportCSV(ctx, r)
						_ = r.Close()
					}
				}
				if err != nil {
					return &localizedError{msg: a.loc.T(i18n.ImportFailed, err), err: err}
				}
				a.printImportReport(report)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&archiveKey, "archive-key", "", "Import an archived export by key")
	return cmd
}

func (a *app) openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(a.in), nil
	}
	return os.Open(args[0])
}

func (a *app) printImportReport(report interchange.ImportReport) {
	a.println(i18n.ImportedRows, report.Imported)
	for _, row := range report.Skipped {
		a.println(i18n.SkippedRow, row.Line, row.Reason)
	}
	if len(report.IgnoredColumns) > 0 {
		a.println(i18n.IgnoredColumns, strings.Join(report.IgnoredColumns, ", "))
	}
}
