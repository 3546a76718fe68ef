package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"highlight-video-gen/internal/logging"
)

// Job is one full generation pass.
type Job func(ctx context.Context) error

// Service re-runs the generation job on a cron schedule until the
// context is cancelled.
type Service struct {
	job  Job
	log  *logging.Logger
	cron *cron.Cron
	spec string
}

func New(spec string, job Job, log *logging.Logger) *Service {
	return &Service{job: job, log: log, cron: cron.New(), spec: spec}
}

func (s *Service) Run(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.log.Infof("scheduler: starting scheduled generation")
		if err := s.job(ctx); err != nil {
			s.log.Errorf("scheduler: generation failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Infof("scheduler: running on schedule %q", s.spec)

	<-ctx.Done()

	ctxStop := s.cron.Stop()
	select {
	case <-ctxStop.Done():
		return nil
	case <-time.After(10 * time.Second):
		return errors.New("cron stop timeout")
	}
}
