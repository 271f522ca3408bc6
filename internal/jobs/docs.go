// Package jobs provides scheduled background tasks for the settlement service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level precision and are
// managed through JobManager:
//
//	jobManager := jobs.NewJobManager(statsHandler, cfg.StatsJobSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// WithdrawalBacklogJob reads the withdrawal stats read model and logs the number and
// amount of Pending and Approved requests. Its schedule defaults to "0 */5 * * * *".
//
// A failed run is logged and the next tick tries again.
package jobs
