package background

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"rento-service/internal/config"
	"rento-service/internal/metrics"
	"rento-service/internal/repository"
)

// jobTimeout bounds each scheduled run
const jobTimeout = 2 * time.Minute

// Runner schedules periodic maintenance jobs
type Runner struct {
	cron     *cron.Cron
	cfg      config.JobsConfig
	authRepo *repository.AuthRepository
	leadRepo *repository.LeadRepository
	logger   *logrus.Logger
}

// NewRunner creates a background job runner
func NewRunner(cfg config.JobsConfig, authRepo *repository.AuthRepository, leadRepo *repository.LeadRepository, logger *logrus.Logger) *Runner {
	return &Runner{
		cron:     cron.New(),
		cfg:      cfg,
		authRepo: authRepo,
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// Start registers and starts the scheduled jobs
func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc(r.cfg.SessionCleanupSpec, r.cleanupSessions); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc(r.cfg.StaleLeadSpec, r.sweepStaleLeads); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.WithFields(logrus.Fields{
		"session_cleanup": r.cfg.SessionCleanupSpec,
		"stale_leads":     r.cfg.StaleLeadSpec,
	}).Info("Background jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("Background jobs stopped")
}

func (r *Runner) cleanupSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := r.authRepo.CleanupExpiredSessions(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Expired session cleanup failed")
		return
	}
	if removed > 0 {
		r.logger.WithField("removed", removed).Info("Cleaned up expired sessions")
	}

	active, err := r.authRepo.CountActiveSessions(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Active session count failed")
		return
	}
	metrics.SetActiveSessions(float64(active))
}

func (r *Runner) sweepStaleLeads() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	closed, err := r.leadRepo.MarkStaleLeads(ctx, r.cfg.StaleLeadDays)
	if err != nil {
		r.logger.WithError(err).Error("Stale lead sweep failed")
		return
	}
	if closed > 0 {
		r.logger.WithFields(logrus.Fields{
			"closed":     closed,
			"stale_days": r.cfg.StaleLeadDays,
		}).Info("Closed stale leads")
	}
}
