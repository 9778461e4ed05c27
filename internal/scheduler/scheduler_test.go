package scheduler

import (
	"context"
	"errors"
	"testing"
)

type countingSyncer struct {
	calls int
	err   error
}

func (c *countingSyncer) SyncSheets(context.Context) (int, error) {
	c.calls++
	return 3, c.err
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler("every friday", &countingSyncer{}, nil)
	if err := s.Start(); err == nil {
		t.Fatal("expected cron parse error")
	}
}

func TestStartWithoutScheduleIsIdle(t *testing.T) {
	s := NewScheduler("", &countingSyncer{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(s.cron.Entries()) != 0 {
		t.Error("no job should be registered")
	}
	s.Stop()
}

func TestExportJobCallsSyncer(t *testing.T) {
	syncer := &countingSyncer{err: errors.New("quota exceeded")}
	s := NewScheduler("0 3 * * *", syncer, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	if len(s.cron.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(s.cron.Entries()))
	}

	s.exportSheets()
	if syncer.calls != 1 {
		t.Errorf("calls = %d, want 1", syncer.calls)
	}
}
