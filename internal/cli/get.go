package cli

import (
	"errors"
	"net/url"

	"dareboard/internal/apiutil"
	"dareboard/internal/client"
	"dareboard/internal/domain/dare"
	"dareboard/internal/output"

	"github.com/spf13/cobra"
)

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one dare",
		Long: `Show one dare.

Examples:
  dares get 42
  dares get 42 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, found, err := client.GetEntity[dare.Dare](cmd.Context(), a.client, "/api/v1/dares/"+url.PathEscape(args[0]))
			if err != nil {
				return errors.New(apiutil.HandleError(err, "get dare"))
			}

			var entity any
			if found {
				entity = apiutil.ValidateResponse(&d, apiutil.KindDare)
			}
			if entity == nil {
				return errors.New(apiutil.ErrNotFound.Message())
			}
			return a.formatter.Print(d, output.DareDetail(d))
		},
	}
}
