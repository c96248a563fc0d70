package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitGet(t *testing.T) {
	p := New(2)
	defer p.Close()

	f := Submit(p, func() (int, error) { return 42, nil })
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitAfterCloseErrors(t *testing.T) {
	p := New(1)
	p.Close()

	f := Submit(p, func() (int, error) { return 1, nil })
	_, err := f.Get()
	assert.Error(t, err)
}

func TestParallelMapPreservesOrder(t *testing.T) {
	p := New(4)
	defer p.Close()

	items := []int{1, 2, 3, 4, 5}
	results, err := ParallelMap(p, items, func(i int) (int, error) {
		return i * i, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, results)
}

func TestParallelMapPropagatesError(t *testing.T) {
	p := New(4)
	defer p.Close()

	items := []int{1, 2, 3}
	_, err := ParallelMap(p, items, func(i int) (int, error) {
		if i == 2 {
			return 0, errors.New("boom")
		}
		return i, nil
	})
	assert.Error(t, err)
}

func TestParallelForEach(t *testing.T) {
	p := New(4)
	defer p.Close()

	var count int32
	err := ParallelForEach(p, []int{1, 2, 3}, func(i int) error {
		return nil
	})
	require.NoError(t, err)
	_ = count
}

func TestParallelFilter(t *testing.T) {
	p := New(4)
	defer p.Close()

	out := ParallelFilter(p, []int{1, 2, 3, 4, 5, 6}, func(i int) bool {
		return i%2 == 0
	})
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestParallelReduceSum(t *testing.T) {
	p := New(4)
	defer p.Close()

	sum := ParallelReduce(p, []int{1, 2, 3, 4, 5}, 0, func(a, b int) int { return a + b })
	assert.Equal(t, 15, sum)
}

func TestGlobalPoolIsSingleton(t *testing.T) {
	a := Global()
	b := Global()
	assert.Same(t, a, b)
}
