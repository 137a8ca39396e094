package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/kabuscan/internal/schedule"
	"github.com/wonny/kabuscan/internal/schedule/jobs"
)

// schedulerCmd manages the screening scheduler.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "スケジューラ管理",
	Long: `スケジューラを起動し、毎営業日のスクリーニングを自動実行します。

Subcommands:
  start - スケジューラ起動 (Ctrl+C で終了)
  run   - 登録ジョブを即時実行

Example:
  go run ./cmd/kabuscan scheduler start
  go run ./cmd/kabuscan scheduler run daily_screen`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "スケジューラ起動",
		RunE:  runSchedulerStart,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "ジョブを即時実行",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func initScheduler(cmd *cobra.Command) (*schedule.Scheduler, *app, error) {
	a, err := initApp(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("init: %w", err)
	}

	sched := schedule.New(a.logger)
	if err := sched.AddJob(jobs.NewScreenJob(a.runner, a.cfg.Screener.Schedule, a.logger)); err != nil {
		a.close()
		return nil, nil, fmt.Errorf("register screen job: %w", err)
	}

	return sched, a, nil
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	sched, a, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	sched.Start()

	fmt.Println("Scheduler started")
	fmt.Printf("  daily_screen: %s\n", a.cfg.Screener.Schedule)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down scheduler...")
	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, a, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("Running job: %s\n", jobName)
	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	// RunJob is asynchronous; poll for the single result.
	for {
		if res, ok := sched.LastResult(jobName); ok {
			if !res.Success {
				return fmt.Errorf("job %s failed: %s", jobName, res.Error)
			}
			fmt.Printf("Job completed in %s\n", res.Duration.Round(time.Second))
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
}
