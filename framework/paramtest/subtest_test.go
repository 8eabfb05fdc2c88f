package paramtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsString(t *testing.T) {
	assert.Equal(t, "", Params{}.String())
	assert.Equal(t, "a=1", Params{P("a", 1)}.String())
	assert.Equal(t, "a=1, b=x, c=1.5", Params{P("a", 1), P("b", "x"), P("c", 1.5)}.String())

	// order is the order of supply, not alphabetical
	assert.Equal(t, "z=1, a=2", Params{P("z", 1), P("a", 2)}.String())
}

func TestSubTestDescriptionDuringAndAfterScope(t *testing.T) {
	var during, after string
	_ = Run(Config{}, func(st *T) {
		st.Run("method", func(st0 *T) {
			st0.SubTest("case", Params{P("a", 1), P("b", 2)}, func(st1 *T) {
				during = st1.Description()
			})
			after = st0.Description()
		})
	})
	assert.Equal(t, "[case] (a=1, b=2)", during)
	assert.Equal(t, "", after)
}

func TestSubTestDescriptionWithEmptyLabel(t *testing.T) {
	var during string
	_ = Run(Config{}, func(st *T) {
		st.SubTest("", Params{P("k", "v")}, func(st1 *T) {
			during = st1.Description()
		})
	})
	assert.Equal(t, "[] (k=v)", during)
}

func TestSubTestDescriptionAppendsToBaseDescription(t *testing.T) {
	var during, after string
	_ = Run(Config{}, func(st *T) {
		st.Describe("fit of synthetic spectrum")
		st.SubTest("narrow peak", Params{P("fwhm", 0.1)}, func(st1 *T) {
			during = st1.Description()
		})
		after = st.Description()
	})
	assert.Equal(t, "fit of synthetic spectrum [narrow peak] (fwhm=0.1)", during)
	assert.Equal(t, "fit of synthetic spectrum", after)
}

func TestSubTestDescriptionEmptyWhenNothingSet(t *testing.T) {
	_ = Run(Config{}, func(st *T) {
		assert.Equal(t, "", st.Description())
	})
}

func TestSubTestFailureDoesNotStopLaterSubTests(t *testing.T) {
	var ran []string
	result := Run(Config{}, func(st *T) {
		st.Run("method", func(st0 *T) {
			st0.SubTest("first", Params{P("i", 0)}, func(st1 *T) {
				ran = append(ran, "first")
				st1.Errorf("wrong value")
				st1.FailNow()
			})
			st0.SubTest("second", Params{P("i", 1)}, func(st1 *T) {
				ran = append(ran, "second")
			})
		})
	})

	assert.Equal(t, []string{"first", "second"}, ran)
	assert.False(t, result.OK())
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, TestID{"method", "[first] (i=0)"}, result.Failures[0].TestID)
}

func TestSubTestInlineFallbackStopsAtFirstFailure(t *testing.T) {
	var ran []string
	result := Run(Config{InlineSubTests: true}, func(st *T) {
		st.Run("method", func(st0 *T) {
			st0.SubTest("first", Params{P("i", 0)}, func(st1 *T) {
				ran = append(ran, "first")
				st1.Errorf("wrong value")
				st1.FailNow()
			})
			st0.SubTest("second", Params{P("i", 1)}, func(st1 *T) {
				ran = append(ran, "second")
			})
		})
	})

	// the degraded runner shares the caller's scope, so the second block
	// never runs after the first one terminates the method
	assert.Equal(t, []string{"first"}, ran)
	assert.False(t, result.OK())
}

func TestSubTestClearsDescriptionWhenBlockFails(t *testing.T) {
	var after string
	_ = Run(Config{InlineSubTests: true}, func(st *T) {
		st.Run("method", func(st0 *T) {
			st0.Run("inner", func(st1 *T) {
				st1.SubTest("bad", Params{P("x", 3)}, func(st2 *T) {
					st2.FailNow()
				})
			})
			// the inner scope failed, but its suffix must not leak
			after = st0.Description()
		})
	})
	assert.Equal(t, "", after)
}

func TestSubTestCases(t *testing.T) {
	cases := []Case{
		{Label: "low", Params: Params{P("counts", 10)}},
		{Label: "high", Params: Params{P("counts", 1000)}},
	}
	var seen []string
	_ = Run(Config{}, func(st *T) {
		st.SubTestCases(cases, func(st1 *T, params Params) {
			seen = append(seen, st1.Description())
		})
	})
	assert.Equal(t, []string{"[low] (counts=10)", "[high] (counts=1000)"}, seen)
}
