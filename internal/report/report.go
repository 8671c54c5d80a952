// Package report delivers filter results back to the caller and, when
// running integrated with a host, to a fire-and-forget notifier.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/edouard-claude/exsel/internal/filter"
	"github.com/edouard-claude/exsel/internal/logger"
)

// Notification is the (original, modified, label, url) tuple emitted for
// every successful filter run.
type Notification struct {
	Original string
	Modified filter.Output
	Filter   string
	URL      string
	Time     time.Time
}

// Notifier receives notifications. Errors are never surfaced to the user.
type Notifier interface {
	Notify(n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) error { return f(n) }

// Reporter returns results and emits notifications in integrated mode.
type Reporter struct {
	notifier   Notifier
	integrated bool
}

// New creates a Reporter. With integrated false, or a nil notifier, Report
// only returns the modified value.
func New(notifier Notifier, integrated bool) *Reporter {
	return &Reporter{notifier: notifier, integrated: integrated}
}

// Report returns modified unchanged and notifies the host when integrated.
// It never panics and never fails.
func (r *Reporter) Report(original string, modified filter.Output, label, url string) filter.Output {
	if r == nil || !r.integrated || r.notifier == nil {
		return modified
	}
	r.notify(Notification{
		Original: original,
		Modified: modified,
		Filter:   label,
		URL:      url,
		Time:     time.Now(),
	})
	return modified
}

func (r *Reporter) notify(n Notification) {
	defer func() {
		if p := recover(); p != nil {
			logger.Debug("notifier panicked", "filter", n.Filter, "panic", p)
		}
	}()
	if err := r.notifier.Notify(n); err != nil {
		logger.Debug("notification skipped", "filter", n.Filter, "err", err)
	}
}

// Multi fans a notification out to every notifier, continuing past failures.
func Multi(notifiers ...Notifier) Notifier {
	var list []Notifier
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}
	return multi(list)
}

type multi []Notifier

func (m multi) Notify(n Notification) error {
	var errs []error
	for i, notifier := range m {
		if err := safeNotify(notifier, n); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func safeNotify(notifier Notifier, n Notification) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return notifier.Notify(n)
}
