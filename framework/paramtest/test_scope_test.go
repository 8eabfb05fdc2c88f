package paramtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	config := Config{
		Context: myContextValue,
	}
	_ = Run(config, func(st *T) {
		assert.Equal(t, myContextValue, st.Context())

		st.Run("subtest", func(st1 *T) {
			assert.Equal(t, myContextValue, st1.Context())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(Config{}, func(st *T) {
		st.Run("", func(st *T) {
			executed1 = true
			st.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(Config{}, func(st *T) {
		st.Run("", func(st *T) {
			executed1 = true
			st.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(Config{}, func(st *T) {
		st.Run("parent", func(st0 *T) {
			st0.Run("subtest1", func(st1 *T) {
				// this test passes
			})
			st0.Run("subtest2", func(st2 *T) {
				// this test passes
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 0)

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(Config{}, func(st *T) {
		st.Run("parent", func(st0 *T) {
			st0.Run("subtest1", func(st1 *T) {
				// this test passes
			})
			st0.Run("subtest2", func(st2 *T) {
				st2.Errorf("failed because %s", "reasons")
				st2.Errorf("and failed some more")
			})
			st0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(Config{}, func(st *T) {
		st.Run("parent", func(st0 *T) {
			st0.Run("subtest1", func(st1 *T) {
				st1.Skip()
			})
			st0.Run("subtest2", func(st2 *T) {
				st2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Nil(t, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(Config{Filter: filter}, func(st *T) {
		st.Run("a", func(st0 *T) {
			st0.Run("sub1a", func(st1 *T) {})
			st0.Run("sub2a", func(st1 *T) {})
		})
		st.Run("b", func(st0 *T) {
			st0.Run("sub1b", func(st1 *T) {})
			st0.Run("sub2b", func(st1 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestTestScopeRunsCleanupsInReverseOrder(t *testing.T) {
	var order []int
	_ = Run(Config{}, func(st *T) {
		st.Run("child", func(st0 *T) {
			st0.Defer(func() { order = append(order, 1) })
			st0.Defer(func() { order = append(order, 2) })
			st0.FailNow()
		})
	})
	assert.Equal(t, []int{2, 1}, order)
}
