package waygate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/waygate/waygate/internal/history"
	"github.com/waygate/waygate/internal/journal"
	"github.com/waygate/waygate/internal/rules"
)

// Pipeline sequences URL construction, guard evaluation, history
// recording, and dispatch to the host's navigation primitives.
// Safe for overlapping in-flight navigations; each call carries its own
// request state and shares the guard sequence and history buffer.
type Pipeline struct {
	host     Host
	pages    PageStack
	fallback FallbackPolicy

	mu        sync.Mutex
	guards    []guardEntry
	nextGuard GuardHandle
	logOn     bool

	hist    *history.Buffer
	log     *logrus.Logger
	journal *journal.Journal

	reloadCancel context.CancelFunc
	reloadDone   chan struct{}
}

// New creates a Pipeline for the given host. The guard sequence starts
// empty and transition logging starts disabled.
func New(host Host, opts ...Option) (*Pipeline, error) {
	if host == nil {
		return nil, errors.New("waygate: host is required")
	}

	cfg := pipelineConfig{capacity: history.DefaultCapacity}
	for _, o := range opts {
		o(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	p := &Pipeline{
		host:     host,
		pages:    cfg.pages,
		fallback: cfg.fallback,
		hist:     history.New(cfg.capacity),
		log:      logger,
	}

	if cfg.journalPath != "" {
		j, err := journal.Open(cfg.journalPath)
		if err != nil {
			return nil, fmt.Errorf("waygate: %w", err)
		}
		p.journal = j
	}

	if cfg.rulesPath != "" {
		if err := p.installRules(cfg.rulesPath, cfg.ruleReload); err != nil {
			if p.journal != nil {
				p.journal.Close()
			}
			return nil, err
		}
	}

	return p, nil
}

// installRules registers the declarative route rules as the first guard,
// optionally behind a hot-reloading watcher.
func (p *Pipeline) installRules(path string, reload bool) error {
	if !reload {
		set, err := rules.Load(path)
		if err != nil {
			return fmt.Errorf("waygate: %w", err)
		}
		p.AddGuard(p.ruleGuard(func() *rules.Set { return set }))
		return nil
	}

	r, err := rules.NewReloader(path, func(_ *rules.Set, err error) {
		if err != nil {
			p.log.WithError(err).Warn("route rule reload failed, keeping previous set")
			return
		}
		p.logStep(logrus.Fields{"path": path}, "route rules reloaded")
	})
	if err != nil {
		return fmt.Errorf("waygate: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.reloadCancel = cancel
	p.reloadDone = make(chan struct{})
	go func() {
		defer close(p.reloadDone)
		_ = r.Run(ctx)
	}()

	p.AddGuard(p.ruleGuard(r.Current))
	return nil
}

// ruleGuard adapts a rule set lookup into a Guard.
func (p *Pipeline) ruleGuard(current func() *rules.Set) Guard {
	return func(ctx context.Context, to, from string, params Params) (bool, error) {
		d := current().Evaluate(to)
		if !d.Allowed {
			p.logStep(logrus.Fields{"from": from, "to": to, "pattern": d.Pattern}, "route rule denied: "+d.Reason)
			return false, nil
		}
		return true, nil
	}
}

// Navigate runs one transition through the pipeline: build the URL, run
// the guards, record history, dispatch to the host. The request's
// optional hooks are invoked after the outcome is settled; they observe
// the same result the error return reports.
//
// Failure modes: *GuardRejectedError, *HostNavigationError,
// ErrInvalidKind, ErrMissingPath.
func (p *Pipeline) Navigate(ctx context.Context, req Request) error {
	err := p.run(ctx, &req)

	if err != nil {
		if req.OnFailure != nil {
			req.OnFailure(err)
		}
	} else if req.OnSuccess != nil {
		req.OnSuccess()
	}
	if req.OnComplete != nil {
		req.OnComplete()
	}
	return err
}

func (p *Pipeline) run(ctx context.Context, req *Request) error {
	if !req.Kind.Valid() {
		return ErrInvalidKind
	}
	if req.Path == "" && req.Kind != KindBack {
		return ErrMissingPath
	}

	from := p.currentRoute()
	built := p.buildDestination(req)

	if rej := p.evaluateGuards(ctx, req.Path, from, req.Params); rej != nil {
		p.logStep(logrus.Fields{"from": from, "to": req.Path, "kind": req.Kind.String(), "guard": rej.Guard},
			"navigation rejected by guard")
		p.appendJournal(from, req.Path, req.Kind, journal.OutcomeGuardRejected, rej.Error())
		return rej
	}

	// History records guard-approved attempts, not confirmed ones: the
	// entry lands before the host call and stays even if the host fails.
	p.hist.Record(built)
	p.logStep(logrus.Fields{"from": from, "to": built, "kind": req.Kind.String()}, "navigating")

	effective, err := p.dispatch(ctx, req.Kind, built, req.Path, req.Hint, req.Steps)
	switch {
	case err != nil:
		p.logStep(logrus.Fields{"from": from, "to": built, "kind": effective.String()},
			"host navigation failed: "+err.Error())
		p.appendJournal(from, built, req.Kind, journal.OutcomeHostFailed, err.Error())
	case effective != req.Kind:
		p.appendJournal(from, built, req.Kind, journal.OutcomeDowngraded, "dispatched as "+effective.String())
	default:
		p.appendJournal(from, built, req.Kind, journal.OutcomeOK, "")
	}
	return err
}

// buildDestination produces the URL that guards the host sees and history
// records. Tab and back transitions never encode parameters.
func (p *Pipeline) buildDestination(req *Request) string {
	if req.Kind == KindSwitchTab || req.Kind == KindBack {
		return req.Path
	}
	return BuildURL(req.Path, req.Params)
}

// OpenNew pushes a new page for path with the given params.
func (p *Pipeline) OpenNew(ctx context.Context, path string, params Params) error {
	return p.Navigate(ctx, Request{Path: path, Params: params})
}

// Replace swaps the current page for path with the given params.
func (p *Pipeline) Replace(ctx context.Context, path string, params Params) error {
	return p.Navigate(ctx, Request{Path: path, Kind: KindReplace, Params: params})
}

// Reset clears the page stack and opens path with the given params.
func (p *Pipeline) Reset(ctx context.Context, path string, params Params) error {
	return p.Navigate(ctx, Request{Path: path, Kind: KindReset, Params: params})
}

// SwitchTab activates the fixed tab at path. Tab destinations cannot
// carry parameters.
func (p *Pipeline) SwitchTab(ctx context.Context, path string) error {
	return p.Navigate(ctx, Request{Path: path, Kind: KindSwitchTab})
}

// Back pops steps pages off the stack. Steps below 1 mean 1.
func (p *Pipeline) Back(ctx context.Context, steps int) error {
	return p.Navigate(ctx, Request{Kind: KindBack, Steps: steps})
}

// BackTo pops pages until the page whose route matches path is on top.
// Fails with ErrPageNotFound when the route is not on the stack; resolves
// immediately when it is already the current page.
func (p *Pipeline) BackTo(ctx context.Context, path string) error {
	if path == "" {
		return ErrMissingPath
	}

	var pages []Page
	if p.pages != nil {
		pages = p.pages.Pages()
	}

	idx := -1
	want := strings.TrimPrefix(path, "/")
	for i, pg := range pages {
		if strings.TrimPrefix(pg.Route, "/") == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}

	steps := len(pages) - 1 - idx
	if steps == 0 {
		return nil
	}
	return p.Navigate(ctx, Request{Path: path, Kind: KindBack, Steps: steps})
}

// SetLogging toggles transition logging.
func (p *Pipeline) SetLogging(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logOn = enabled
}

// History returns a snapshot of recorded destinations, oldest first.
func (p *Pipeline) History() []string {
	return p.hist.Snapshot()
}

// ClearHistory empties the history buffer.
func (p *Pipeline) ClearHistory() {
	p.hist.Clear()
}

// Close stops the rule watcher and closes the journal. The pipeline must
// not be used after Close.
func (p *Pipeline) Close() error {
	if p.reloadCancel != nil {
		p.reloadCancel()
		<-p.reloadDone
	}
	if p.journal != nil {
		return p.journal.Close()
	}
	return nil
}

// currentRoute resolves the origin of a transition from the page stack.
func (p *Pipeline) currentRoute() string {
	if p.pages == nil {
		return ""
	}
	pages := p.pages.Pages()
	if len(pages) == 0 {
		return ""
	}
	return pages[len(pages)-1].Route
}

func (p *Pipeline) loggingEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logOn
}

// logStep emits one diagnostic line when transition logging is enabled.
// Diagnostic only; never affects control flow.
func (p *Pipeline) logStep(fields logrus.Fields, msg string) {
	if !p.loggingEnabled() {
		return
	}
	p.log.WithFields(fields).Info(msg)
}

// appendJournal persists one attempt when the journal is configured.
// A write failure is reported through the logger and otherwise ignored.
func (p *Pipeline) appendJournal(from, to string, kind Kind, outcome journal.Outcome, detail string) {
	if p.journal == nil {
		return
	}
	err := p.journal.Append(journal.Entry{
		ID:      uuid.NewString(),
		Time:    time.Now(),
		From:    from,
		To:      to,
		Kind:    kind.String(),
		Outcome: outcome,
		Detail:  detail,
	})
	if err != nil {
		p.log.WithError(err).Warn("transition journal append failed")
	}
}
