package waygate

import (
	"context"

	"github.com/sirupsen/logrus"
)

// FallbackPolicy decides what happens when the host reports no support
// for a requested transition kind.
type FallbackPolicy int

const (
	// FallbackFail rejects the transition with ErrUnsupportedKind.
	FallbackFail FallbackPolicy = iota
	// FallbackDowngrade maps Replace and Reset to OpenNew when the host
	// supports it. The downgrade is logged. SwitchTab and Back have no
	// substitute and always fail.
	FallbackDowngrade
)

// dispatch maps the transition kind to a host primitive and normalizes
// the outcome. Returns the kind actually dispatched, which differs from
// the requested one only under FallbackDowngrade.
func (p *Pipeline) dispatch(ctx context.Context, kind Kind, built, rawPath string, hint *Hint, steps int) (Kind, error) {
	effective := kind
	if !p.hostSupports(kind) {
		downgradable := kind == KindReplace || kind == KindReset
		if p.fallback == FallbackDowngrade && downgradable && p.hostSupports(KindOpenNew) {
			effective = KindOpenNew
			p.logStep(logrus.Fields{"requested": kind.String(), "effective": effective.String(), "to": built},
				"host lacks transition kind, downgrading")
		} else {
			return kind, &HostNavigationError{Kind: kind, URL: built, Err: ErrUnsupportedKind}
		}
	}

	var err error
	switch effective {
	case KindOpenNew:
		err = p.host.OpenNew(ctx, built, hint)
	case KindReplace:
		err = p.host.Replace(ctx, built, hint)
	case KindReset:
		err = p.host.Reset(ctx, built, hint)
	case KindSwitchTab:
		// Tab destinations cannot carry a query string on this host
		// family; only the raw path goes through.
		err = p.host.SwitchTab(ctx, rawPath)
	case KindBack:
		if steps < 1 {
			steps = 1
		}
		err = p.host.Back(ctx, steps)
	default:
		return effective, ErrInvalidKind
	}

	if err != nil {
		return effective, &HostNavigationError{Kind: effective, URL: built, Err: err}
	}
	return effective, nil
}

func (p *Pipeline) hostSupports(k Kind) bool {
	if cr, ok := p.host.(CapabilityReporter); ok {
		return cr.Supports(k)
	}
	return true
}
