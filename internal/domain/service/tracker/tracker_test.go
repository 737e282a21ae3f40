package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/tracker"
)

func deals(ids ...int64) []entity.Deal {
	result := make([]entity.Deal, 0, len(ids))
	for _, id := range ids {
		result = append(result, entity.Deal{ID: id})
	}
	return result
}

func ids(ds []entity.Deal) []int64 {
	result := make([]int64, 0, len(ds))
	for _, d := range ds {
		result = append(result, d.ID)
	}
	return result
}

func TestFirstPollEmitsNothing(t *testing.T) {
	rq := require.New(t)

	s := tracker.NewPollingSession()
	rq.False(s.Primed())

	fresh := s.Observe(deals(1, 2, 3))
	rq.Empty(fresh)
	rq.True(s.Primed())
	rq.Equal(3, s.Size())
}

func TestNewDealEmittedExactlyOnce(t *testing.T) {
	rq := require.New(t)

	s := tracker.NewPollingSession()
	s.Observe(deals(1, 2, 3))

	fresh := s.Observe(deals(1, 2, 3, 4))
	rq.Equal([]int64{4}, ids(fresh))

	// Same listing again: not new anymore.
	fresh = s.Observe(deals(1, 2, 3, 4))
	rq.Empty(fresh)
}

func TestDisappearanceIsSilent(t *testing.T) {
	rq := require.New(t)

	s := tracker.NewPollingSession()
	s.Observe(deals(1, 2, 3))

	// Deal 2 was dismissed; nothing to report.
	fresh := s.Observe(deals(1, 3))
	rq.Empty(fresh)
	rq.Equal(2, s.Size())

	// It reappears: no longer in the known set, so it is new again.
	fresh = s.Observe(deals(1, 2, 3))
	rq.Equal([]int64{2}, ids(fresh))
}

func TestResetPrimesAgain(t *testing.T) {
	rq := require.New(t)

	s := tracker.NewPollingSession()
	s.Observe(deals(1, 2))

	s.Reset()
	rq.False(s.Primed())
	rq.Zero(s.Size())

	// After a filter change the first poll of the new filter must not
	// announce everything it sees.
	fresh := s.Observe(deals(7, 8, 9))
	rq.Empty(fresh)

	fresh = s.Observe(deals(7, 8, 9, 10))
	rq.Equal([]int64{10}, ids(fresh))
}

func TestEmptyPolls(t *testing.T) {
	rq := require.New(t)

	s := tracker.NewPollingSession()

	rq.Empty(s.Observe(nil))
	rq.True(s.Primed())

	rq.Empty(s.Observe(deals()))
	rq.Equal(ids(deals(5)), ids(s.Observe(deals(5))))
}
