package pagination

import "dareboard/internal/apiutil"

type options struct {
	initialPage  int
	initialLimit int
	autoFetch    bool
	label        string
	extra        map[string]string
}

func defaultOptions() options {
	return options{
		initialPage:  apiutil.DefaultPage,
		initialLimit: apiutil.DefaultPageSize,
		autoFetch:    true,
		label:        "list",
	}
}

// Option configures a Controller or Scroller.
type Option func(*options)

// WithInitialPage sets the page used before the first fetch.
func WithInitialPage(page int) Option {
	return func(o *options) { o.initialPage = page }
}

// WithInitialLimit sets the page size. It is clamped into the platform range.
func WithInitialLimit(limit int) Option {
	return func(o *options) { o.initialLimit = limit }
}

// WithAutoFetch controls whether construction performs the first fetch.
// Defaults to true.
func WithAutoFetch(auto bool) Option {
	return func(o *options) { o.autoFetch = auto }
}

// WithLabel names the list in logs and error context, e.g. "dares".
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithParams sets filters passed to every fetch as Params.Extra.
func WithParams(extra map[string]string) Option {
	return func(o *options) { o.extra = cloneExtra(extra) }
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := apiutil.ClampPagination(o.initialPage, o.initialLimit)
	o.initialPage, o.initialLimit = p.Page, p.Limit
	return o
}
