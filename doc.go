// Package waygate is a guarded navigation layer for mini-app and web host
// runtimes. It builds destination URLs, runs ordered asynchronous guards
// against every proposed transition, keeps a bounded history of attempted
// navigations, and dispatches to the host's navigation primitives through
// a uniform error contract.
//
// Usage:
//
//	nav, err := waygate.New(host,
//	    waygate.WithPageStack(stack),
//	    waygate.WithRules("routes.yaml"),
//	)
//	nav.AddGuard(func(ctx context.Context, to, from string, params waygate.Params) (bool, error) {
//	    return !strings.Contains(to, "/admin"), nil
//	})
//	err = nav.OpenNew(ctx, "/pages/detail", waygate.Params{"id": waygate.Int(123)})
//
// The pipeline owns no global state: construct one Pipeline at application
// start and thread it through callers.
package waygate
