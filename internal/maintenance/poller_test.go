package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scripted struct {
	responses []domain.Maintenance
	errs      []error
	calls     int
}

func (s *scripted) fetch(ctx context.Context) (domain.Maintenance, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return domain.Maintenance{}, s.errs[i]
	}
	if i >= len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	return s.responses[i], nil
}

func TestPollerChecksImmediatelyAndOnInterval(t *testing.T) {
	clock := schedule.NewManual()
	src := &scripted{responses: []domain.Maintenance{
		{MaintenanceMode: false},
		{MaintenanceMode: false},
		{MaintenanceMode: true, MaintenanceMessage: "upgrading", SiteName: "Folio"},
	}}
	var changes []domain.Maintenance
	p := New(src.fetch, WithScheduler(clock), WithOnChange(func(m domain.Maintenance) { changes = append(changes, m) }))

	p.Start(context.Background())
	assert.Equal(t, 1, src.calls)
	assert.False(t, p.Active())
	require.Len(t, changes, 1)

	clock.Advance(DefaultInterval)
	assert.Equal(t, 2, src.calls)
	assert.Len(t, changes, 1, "unchanged status is not reported")

	clock.Advance(DefaultInterval)
	assert.True(t, p.Active())
	require.Len(t, changes, 2)
	assert.Equal(t, "upgrading", changes[1].Message())

	p.Stop()
	assert.False(t, p.Running())
	clock.Advance(10 * DefaultInterval)
	assert.Equal(t, 3, src.calls)
	assert.Equal(t, 0, clock.Pending())
}

func TestPollerKeepsLastStatusOnError(t *testing.T) {
	clock := schedule.NewManual()
	src := &scripted{
		responses: []domain.Maintenance{{MaintenanceMode: true}, {}, {MaintenanceMode: true}},
		errs:      []error{nil, errors.New("offline")},
	}
	p := New(src.fetch, WithScheduler(clock), WithInterval(time.Second))
	p.Start(context.Background())
	require.True(t, p.Active())

	clock.Advance(time.Second)
	assert.True(t, p.Active())
	status, checked := p.Status()
	assert.True(t, checked)
	assert.True(t, status.MaintenanceMode)
}

func TestPollerNotActiveBeforeFirstSuccess(t *testing.T) {
	src := &scripted{responses: []domain.Maintenance{{}}, errs: []error{errors.New("boom")}}
	p := New(src.fetch, WithScheduler(schedule.NewManual()))
	_, err := p.Check(context.Background())
	assert.Error(t, err)
	_, checked := p.Status()
	assert.False(t, checked)
	assert.False(t, p.Active())
}

func TestPollerStopsWhenContextDone(t *testing.T) {
	clock := schedule.NewManual()
	src := &scripted{responses: []domain.Maintenance{{}}}
	ctx, cancel := context.WithCancel(context.Background())
	p := New(src.fetch, WithScheduler(clock), WithInterval(time.Second))
	p.Start(ctx)
	p.Start(ctx)
	assert.Equal(t, 1, clock.Pending(), "second start is a no-op")

	cancel()
	clock.Advance(time.Second)
	assert.False(t, p.Running())
	assert.Equal(t, 1, src.calls)
}
