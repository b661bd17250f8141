package app

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logger"
)

// runPipeline is the frame loop. It manages the idle/active mode switch
// driven by motion detection and feeds detected hand snapshots into the
// gesture handler.
//
// Pipeline logic:
//  1. Start in idle mode at IdleFPS.
//  2. On motion, switch to active mode at the configured capture rate.
//  3. In active mode, run hand detection on every Nth frame only.
//  4. Feed the primary hand's snapshot to the handler; a frame with no
//     hand still goes through so the gesture session sees the loss.
//  5. After IdleTimeout without motion, drop back to idle mode and close
//     the gesture session.
func (a *App) runPipeline(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	activeFPS := a.config.Cfg.Camera.FPS
	if activeFPS <= 0 {
		activeFPS = DefaultActiveFPS
	}

	activeMode := false
	lastMotion := time.Now()

	interval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		if !a.IsEnabled() {
			continue
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			logger.L().Warnw("failed to read frame", "error", err)
			continue
		}

		motionDetected, _ := a.motion.Detect(frame)

		if motionDetected {
			lastMotion = time.Now()

			if !activeMode {
				activeMode = true
				a.camera.SetFPS(activeFPS)
				ticker.Reset(time.Second / time.Duration(activeFPS))
				a.skipper.Reset()
				logger.L().Debugw("switched to active mode")
			}
		} else if activeMode && time.Since(lastMotion) > IdleTimeout {
			activeMode = false
			a.camera.SetFPS(IdleFPS)
			ticker.Reset(time.Second / time.Duration(IdleFPS))
			logger.L().Debugw("switched to idle mode")

			// The hand is gone; run one empty frame so the gesture
			// session closes instead of freezing on the last label.
			now := time.Now()
			a.record(a.handler.Process(nil, now), now)

			frame.Close()
			continue
		}

		if !activeMode || !a.skipper.ShouldProcess() {
			frame.Close()
			continue
		}

		hands, err := a.detector.Detect(frame)
		frame.Close()
		if err != nil {
			logger.L().Warnw("hand detection failed", "error", err)
			continue
		}

		width, height := a.camera.Resolution()
		snap := detector.SelectHand(hands, 0, width, height)

		now := time.Now()
		a.record(a.handler.Process(snap, now), now)
	}
}
