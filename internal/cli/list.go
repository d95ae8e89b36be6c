package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dareboard/internal/cache"
	"dareboard/internal/client"
	"dareboard/internal/domain/dare"
	"dareboard/internal/output"
	"dareboard/internal/pagination"
	"dareboard/internal/services/poller"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// listFlags are shared by the paged list commands.
type listFlags struct {
	page       int
	limit      int
	difficulty string
	status     string
	creator    string
	sort       string
	search     string
	dareID     string
	cache      bool
	watch      time.Duration
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page to show")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "items per page, 5 to 100 (default from PAGE_SIZE)")
	cmd.Flags().BoolVar(&f.cache, "cache", false, "cache pages in redis (needs REDIS_ADDR)")
	cmd.Flags().DurationVar(&f.watch, "watch", 0, "refresh the page at this interval until interrupted")
}

func (f *listFlags) bindFilters(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "filter by difficulty")
	cmd.Flags().StringVar(&f.status, "status", "", "filter by status")
	cmd.Flags().StringVar(&f.creator, "creator", "", "filter by creator id (\"me\" for yourself)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "newest, oldest, difficulty or title")
	cmd.Flags().StringVar(&f.search, "search", "", "match title or description")
}

func (f *listFlags) extra() map[string]string {
	return map[string]string{
		"difficulty": f.difficulty,
		"status":     f.status,
		"creator":    f.creator,
		"sort":       f.sort,
		"q":          f.search,
		"dare":       f.dareID,
	}
}

func (a *app) listCmd() *cobra.Command {
	f := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of dares",
		Long: `Show one page of dares.

Examples:
  dares list
  dares list --page 2 --limit 10 --difficulty edge
  dares list --status pending --watch 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			warnUnknownFilters(f)
			return runList(cmd.Context(), a, f, "dares", "/api/v1/dares", output.DareTable)
		},
	}
	f.bind(cmd)
	f.bindFilters(cmd)
	return cmd
}

func (a *app) actsCmd() *cobra.Command {
	f := &listFlags{}
	cmd := &cobra.Command{
		Use:   "acts",
		Short: "Show one page of acts",
		Long: `Show one page of acts, optionally for a single dare.

Examples:
  dares acts --dare 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), a, f, "acts", "/api/v1/acts", output.ActTable)
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&f.dareID, "dare", "", "only acts for this dare")
	return cmd
}

// pageView is the machine-readable form of one page.
type pageView[T any] struct {
	Data       []T                        `json:"data"`
	Pagination pagination.PaginationState `json:"pagination"`
}

func runList[T any](ctx context.Context, a *app, f *listFlags, name, endpoint string, table func([]T) output.TableData) error {
	fetch := client.PageFetcher[T](a.client, endpoint)
	if f.cache {
		cached, closeFn, err := withCache(ctx, a, name, fetch)
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
	ctl := pagination.New(ctx, fetch,
		pagination.WithInitialPage(f.page),
		pagination.WithInitialLimit(limit),
		pagination.WithParams(f.extra()),
		pagination.WithLabel(name),
		pagination.WithAutoFetch(a.cfg.Paging.AutoFetch),
	)
	defer ctl.Close()

	st := ctl.State()
	if !a.cfg.Paging.AutoFetch {
		st = ctl.FetchData(ctx, f.page, limit)
	}
	if st.Err != "" {
		return errors.New(st.Err)
	}
	if err := printPage(a, st, table); err != nil {
		return err
	}
	if f.watch <= 0 {
		return nil
	}

	unsubscribe := ctl.Subscribe(func(st pagination.State[T]) {
		if st.Loading {
			return
		}
		if st.Err != "" {
			a.formatter.Note("refresh failed: %s", st.Err)
			return
		}
		if err := printPage(a, st, table); err != nil {
			log.Warn().Err(err).Msg("could not print page")
		}
	})
	defer unsubscribe()

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	poller.NewWorker(f.watch, poller.ControllerTarget(name, ctl)).Run(watchCtx)
	return nil
}

func printPage[T any](a *app, st pagination.State[T], table func([]T) output.TableData) error {
	if err := a.formatter.Print(pageView[T]{Data: st.Data, Pagination: st.Pagination}, table(st.Data)); err != nil {
		return err
	}
	a.formatter.Note(output.PageSummary(st.Pagination))
	return nil
}

// withCache wraps fetch with the redis page cache. A cache that cannot be
// reached is skipped with a warning rather than failing the command.
func withCache[T any](ctx context.Context, a *app, prefix string, fetch pagination.FetchFunc[T]) (pagination.FetchFunc[T], func(), error) {
	if a.cfg.Redis.Addr == "" {
		return nil, nil, errors.New("--cache needs REDIS_ADDR")
	}
	rdb, err := cache.NewClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Msg("page cache disabled")
		return fetch, func() {}, nil
	}
	closeFn := func() { _ = rdb.Close() }
	return cache.Wrap(rdb, "dareboard:"+prefix, a.cfg.Redis.TTL, fetch), closeFn, nil
}

// warnUnknownFilters logs filter values the domain does not know. The server
// still decides what to do with them.
func warnUnknownFilters(f *listFlags) {
	if f.difficulty != "" && !dare.Difficulty(f.difficulty).Valid() {
		log.Warn().Str("difficulty", f.difficulty).Msg("unknown difficulty, server may ignore it")
	}
	if f.status != "" && !dare.Status(f.status).Valid() {
		log.Warn().Str("status", f.status).Msg("unknown status, server may ignore it")
	}
	if f.sort != "" && !dare.SortKey(f.sort).Valid() {
		log.Warn().Str("sort", f.sort).Msg("unknown sort, server may ignore it")
	}
}
