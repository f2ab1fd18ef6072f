package frame

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// How identifies a join strategy.
type How string

const (
	Inner How = "inner"
	Left  How = "left"
	Right How = "right"
	Outer How = "outer"
)

// JoinOptions configures Join. Exactly one of On or the LeftOn/RightOn pair
// must be set. How defaults to Inner.
type JoinOptions struct {
	On      []string
	LeftOn  []string
	RightOn []string
	How     How
}

// Join joins two DataFrames on key columns. With LeftOn/RightOn the right
// frame's key columns are matched positionally against the left frame's and
// take the left names in the result. Non-key columns of the right frame whose
// names clash with the left frame are dropped before joining, so the left
// frame's values win.
func Join(left, right dataframe.DataFrame, opts JoinOptions) (dataframe.DataFrame, error) {
	if left.Err != nil {
		return left, errors.WithStack(left.Err)
	}
	if right.Err != nil {
		return right, errors.WithStack(right.Err)
	}

	how := opts.How
	if how == "" {
		how = Inner
	}

	useOn := len(opts.On) > 0
	usePair := len(opts.LeftOn) > 0 || len(opts.RightOn) > 0
	if useOn == usePair {
		return dataframe.DataFrame{}, errors.New("join requires either On or the LeftOn/RightOn pair")
	}

	keys := opts.On
	r := right
	if usePair {
		if len(opts.LeftOn) != len(opts.RightOn) {
			return dataframe.DataFrame{}, errors.Errorf("join key mismatch: %d left vs %d right", len(opts.LeftOn), len(opts.RightOn))
		}
		keys = opts.LeftOn
		for i, rk := range opts.RightOn {
			lk := opts.LeftOn[i]
			if rk == lk {
				continue
			}
			r = r.Rename(lk, rk)
			if r.Err != nil {
				return r, errors.WithStack(r.Err)
			}
		}
	}

	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	leftNames := make(map[string]struct{}, left.Ncol())
	for _, n := range left.Names() {
		leftNames[n] = struct{}{}
	}
	var clashing []string
	for _, n := range r.Names() {
		if _, isKey := keySet[n]; isKey {
			continue
		}
		if _, ok := leftNames[n]; ok {
			clashing = append(clashing, n)
		}
	}
	if len(clashing) > 0 {
		r = r.Drop(clashing)
		if r.Err != nil {
			return r, errors.WithStack(r.Err)
		}
	}

	var out dataframe.DataFrame
	switch how {
	case Inner:
		out = left.InnerJoin(r, keys...)
	case Left:
		out = left.LeftJoin(r, keys...)
	case Right:
		out = left.RightJoin(r, keys...)
	case Outer:
		out = left.OuterJoin(r, keys...)
	default:
		return dataframe.DataFrame{}, errors.Errorf("unsupported join strategy %q", how)
	}
	return out, errors.WithStack(out.Err)
}
