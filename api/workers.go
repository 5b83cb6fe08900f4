package api

import (
	"context"
	"strings"
	"time"

	"netrecon/config"
	"netrecon/logging"
	"netrecon/scanner"
	"netrecon/targets"
)

// StartWorkers launches background goroutines that drain the task queue and
// run the scan engine. The enricher is shared: nmap availability was already
// detected once when it was built.
func StartWorkers(store TaskStore, cfg config.Config, enricher scanner.Enricher, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go workerLoop(store, cfg, enricher)
	}
}

func workerLoop(store TaskStore, cfg config.Config, enricher scanner.Enricher) {
	logger := logging.Logger()
	for {
		taskID, err := store.PopFromQueue()
		if err != nil {
			logger.Error("worker failed to pop task", "error", err)
			time.Sleep(time.Second)
			continue
		}

		task, err := store.GetTask(taskID)
		if err != nil {
			if err == ErrTaskNotFound {
				logger.Warn("worker task disappeared", "task_id", taskID)
				continue
			}
			logger.Error("worker failed to load task", "task_id", taskID, "error", err)
			continue
		}

		task.Status = "running"
		task.Error = ""
		task.Reports = nil
		task.CompletedAt = nil
		if err := store.UpdateTask(task); err != nil {
			logger.Error("worker failed to mark task running", "task_id", taskID, "error", err)
			continue
		}

		addrs, err := expandAddressSpec(task.AddressSpec)
		if err != nil {
			failTask(task, store, err)
			continue
		}

		portSpec := task.Ports
		if portSpec == "" {
			portSpec = "1-1024"
		}
		ports, err := targets.ResolvePortSpec(portSpec)
		if err != nil {
			failTask(task, store, err)
			continue
		}

		engine := scanner.NewEngine(cfg, ports,
			scanner.NewConnectProber(cfg),
			scanner.NewConnectScanner(cfg),
			enricher,
			logger,
		)
		reports := engine.Run(context.Background(), addrs)

		task.Status = "completed"
		task.Reports = reports
		now := time.Now().UTC()
		task.CompletedAt = &now

		if err := store.UpdateTask(task); err != nil {
			logger.Error("worker failed to update task", "task_id", task.ID, "error", err)
		}
	}
}

func failTask(task *ScanTask, store TaskStore, err error) {
	logger := logging.Logger()
	logger.Error("worker task failed", "task_id", task.ID, "error", err)
	task.Status = "failed"
	task.Error = err.Error()
	task.Reports = nil
	now := time.Now().UTC()
	task.CompletedAt = &now
	if updateErr := store.UpdateTask(task); updateErr != nil {
		logger.Error("worker failed to persist failed task", "task_id", task.ID, "error", updateErr)
	}
}

// expandAddressSpec infers the spec form from its shape: CIDR blocks carry a
// slash, ranges a dash, anything else must be a single host.
func expandAddressSpec(spec string) ([]string, error) {
	switch {
	case strings.Contains(spec, "/"):
		return targets.ExpandCIDR(spec)
	case strings.Contains(spec, "-"):
		return targets.ExpandRange(spec)
	default:
		return targets.ExpandHost(spec)
	}
}
