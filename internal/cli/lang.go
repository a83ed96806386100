package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Apurer/dentallab-tracker/internal/app/api"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
)

func (a *app) langCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "lang [en|ar]",
		Short:     "Show or set the interface language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: i18n.Supported(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComponents(cmd, func(ctx context.Context, c *api.Components) error {
				if len(args) == 0 {
					a.println(i18n.CurrentLanguage, a.loc.Lang(), a.loc.Dir())
					return nil
				}
				lang, err := c.Preferences.SetLanguage(ctx, args[0])
				if err != nil {
					return err
				}
				a.loc = i18n.New(lang)
				a.println(i18n.LanguageSet, lang)
				return nil
			})
		},
	}
}
