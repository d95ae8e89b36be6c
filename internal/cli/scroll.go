package cli

import (
	"errors"
	"fmt"

	"dareboard/internal/client"
	"dareboard/internal/domain/dare"
	"dareboard/internal/output"
	"dareboard/internal/pagination"

	"github.com/spf13/cobra"
)

func (a *app) scrollCmd() *cobra.Command {
	f := &listFlags{}
	var pages int
	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Read dares page after page like an infinite feed",
		Long: `Read dares page after page, appending each one, until the feed runs
out or --pages pages have been read.

Examples:
  dares scroll --pages 3
  dares scroll --difficulty titillating --limit 50 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", pages)
			}
			warnUnknownFilters(f)
			ctx := cmd.Context()

			fetch := client.PageFetcher[dare.Dare](a.client, "/api/v1/dares")
			if f.cache {
				cached, closeFn, err := withCache(ctx, a, "dares", fetch)
				if err != nil {
					return err
				}
				defer closeFn()
				fetch = cached
			}

			limit := f.limit
			if limit == 0 {
				limit = a.cfg.Paging.DefaultLimit
			}
			s := pagination.NewScroller(ctx, fetch,
				pagination.WithInitialLimit(limit),
				pagination.WithParams(f.extra()),
				pagination.WithLabel("dares"),
			)
			defer s.Close()

			st := s.State()
			for read := 1; st.Err == "" && st.HasMore && read < pages; read++ {
				a.formatter.Note("loaded %d dares", len(st.Data))
				st = s.FetchNext(ctx)
			}
			if st.Err != "" && len(st.Data) == 0 {
				return errors.New(st.Err)
			}
			if st.Err != "" {
				a.formatter.Note("stopped early: %s", st.Err)
			}

			view := scrollView{Data: st.Data, HasMore: st.HasMore, NextPage: st.Page}
			if err := a.formatter.Print(view, output.DareTable(st.Data)); err != nil {
				return err
			}
			more := "end of feed"
			if st.HasMore {
				more = fmt.Sprintf("more from page %d", st.Page)
			}
			a.formatter.Note("%d dares, %s", len(st.Data), more)
			return nil
		},
	}
	cmd.Flags().IntVar(&f.limit, "limit", 0, "items per page, 5 to 100 (default from PAGE_SIZE)")
	cmd.Flags().IntVar(&pages, "pages", 10, "stop after this many pages")
	cmd.Flags().BoolVar(&f.cache, "cache", false, "cache pages in redis (needs REDIS_ADDR)")
	f.bindFilters(cmd)
	return cmd
}

type scrollView struct {
	Data     []dare.Dare `json:"data"`
	HasMore  bool        `json:"hasMore"`
	NextPage int         `json:"nextPage"`
}
