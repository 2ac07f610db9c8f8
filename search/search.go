// Package search turns a free-text query into result records and reports every outcome as a notification.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/query"
	"github.com/ytune-cli/ytune/util"
	"github.com/ytune-cli/ytune/youtube"
)

// Searcher is the remote search collaborator. *youtube.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, q string) ([]*youtube.Result, error)
}

// Orchestrator runs searches. It is safe for concurrent use; overlapping
// searches are independent and the caller keeps whichever resolves last.
type Orchestrator struct {
	searcher Searcher
	notifier notify.Notifier

	// Remember is called with every query that produced results.
	Remember func(q string) error
}

func New(searcher Searcher, notifier notify.Notifier) *Orchestrator {
	return &Orchestrator{
		searcher: searcher,
		notifier: notifier,
		Remember: func(q string) error { return query.Remember(q, 1) },
	}
}

// Search trims raw and queries the API.
//
// A blank query is a no-op and reports ok == false: the caller must leave
// its current list untouched. Otherwise ok is true and results is the new
// list, empty on any failure. Failures never escape as errors; each one
// produces exactly one notification.
func (o *Orchestrator) Search(ctx context.Context, raw string) (results []*youtube.Result, ok bool) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return nil, false
	}

	results, err := o.searcher.Search(ctx, q)
	if err != nil {
		o.report(q, err)
		return []*youtube.Result{}, true
	}

	log.WithField("query", q).Infof("found %s", util.Quantify(len(results), "result", "results"))

	if o.Remember != nil {
		if err := o.Remember(q); err != nil {
			log.Warnf("remember query: %s", err)
		}
	}

	return results, true
}

func (o *Orchestrator) report(q string, err error) {
	entry := log.WithField("query", q)

	var reqErr *youtube.RequestError
	switch {
	case errors.Is(err, youtube.ErrMissingKey):
		entry.Error(err)
		o.notifier.Notify(notify.Error("YouTube API key not configured"))
	case errors.Is(err, youtube.ErrNoResults):
		entry.Info(err)
		o.notifier.Notify(notify.Info("No videos found for your search"))
	case errors.As(err, &reqErr):
		entry.WithField("status", reqErr.StatusCode).Error(err)
		o.notifier.Notify(notify.Error("Search failed: " + reqErr.Error()))
	default:
		entry.Error(err)
		o.notifier.Notify(notify.Error("Search failed: " + err.Error()))
	}
}
