// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the recurring proactive pushes: the morning
// routine ping and the periodic check-in.
package scheduler

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/companion-go/internal/model"
)

// Cron expressions for the two job templates, evaluated in the
// configured timezone.
const (
	morningSchedule = "0 8 * * *"    // daily at 08:00 local
	checkinSchedule = "17 */2 * * *" // every 2 hours at minute 17
)

const (
	jobMorning = "morning"
	jobCheckin = "checkin"
)

const checkinText = "How are you feeling? Want a quick stretch or a water break?"

// Notifier pushes a payload to a device and records the action.
type Notifier interface {
	Notify(deviceID string, p model.Payload, entry model.Event)
}

// ChecklistSource reads a device's current checklist.
type ChecklistSource interface {
	GetChecklist(deviceID string) []string
}

// Scheduler fires the morning and check-in jobs over a fixed device set.
// The set is supplied at construction; changing it means restarting the
// scheduler.
type Scheduler struct {
	cron      *cron.Cron
	logger    *slog.Logger
	gateway   Notifier
	store     ChecklistSource
	deviceIDs []string

	mu      sync.Mutex
	running map[string]bool // per-job re-entrancy guard
}

// New creates a scheduler for the given devices in the given timezone.
func New(gateway Notifier, store ChecklistSource, deviceIDs []string, timezone string, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		logger:    logger,
		gateway:   gateway,
		store:     store,
		deviceIDs: deviceIDs,
		running:   make(map[string]bool),
	}, nil
}

// Start registers both jobs and starts the cron timer. Each firing runs
// in its own goroutine, so a long firing never delays the timer's next
// trigger computation.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(morningSchedule, func() {
		s.runJob(jobMorning, s.fireMorning)
	}); err != nil {
		return fmt.Errorf("scheduling morning job: %w", err)
	}
	if _, err := s.cron.AddFunc(checkinSchedule, func() {
		s.runJob(jobCheckin, s.fireCheckin)
	}); err != nil {
		return fmt.Errorf("scheduling check-in job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		"jobs", len(s.cron.Entries()), "devices", len(s.deviceIDs))
	return nil
}

// Stop stops the timer and waits for in-flight firings started by cron
// to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// runJob executes one firing with the re-entrancy guard held. If the
// previous firing of the same job is still running, this trigger is
// skipped rather than queued. The two job types never block each other.
func (s *Scheduler) runJob(name string, fire func()) {
	s.mu.Lock()
	if s.running[name] {
		s.mu.Unlock()
		s.logger.Warn("previous firing still running, skipping trigger", "job", name)
		return
	}
	s.running[name] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running[name] = false
		s.mu.Unlock()
	}()

	start := time.Now()
	fire()
	s.logger.Debug("firing complete", "job", name, "elapsed", time.Since(start))
}

// fireMorning pushes each device its current checklist joined into one
// line and logs a system entry per device.
func (s *Scheduler) fireMorning() {
	for _, deviceID := range s.deviceIDs {
		s.notifyDevice(jobMorning, deviceID, func() {
			checklist := s.store.GetChecklist(deviceID)
			s.gateway.Notify(deviceID,
				model.Payload{
					Kind: model.KindMorning,
					Text: "Good morning! Here's your routine: " + strings.Join(checklist, ", "),
				},
				model.NewSystem("Morning ping sent"))
		})
	}
}

// fireCheckin pushes the static check-in prompt to each device.
func (s *Scheduler) fireCheckin() {
	for _, deviceID := range s.deviceIDs {
		s.notifyDevice(jobCheckin, deviceID, func() {
			s.gateway.Notify(deviceID,
				model.Payload{Kind: model.KindCheckin, Text: checkinText},
				model.NewSystem("Check-in ping sent"))
		})
	}
}

// notifyDevice isolates one device's notification: a panic while
// notifying one device must not abort the remaining devices in the same
// firing, or take down the cron goroutine.
func (s *Scheduler) notifyDevice(job, deviceID string, notify func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while notifying device",
				"job", job, "device_id", deviceID, "panic", r)
		}
	}()
	notify()
}
