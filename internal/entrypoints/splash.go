package entrypoints

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"helium/internal/components"
	"helium/internal/engine"
	"helium/internal/loading"
	"helium/internal/orchestrator"
)

const defaultMessageDuration = 500 * time.Millisecond

// LoadingMessage is one artificial loading step shown on the splash screen.
type LoadingMessage struct {
	Message  string
	Duration time.Duration
}

// SplashScreenEntryPoint plays a few artificial loading steps on the scene's
// SplashScreenUI, then replaces itself with HomeScene.
type SplashScreenEntryPoint struct {
	orchestrator.BaseEntryPoint

	HomeScene        engine.SceneRef
	UseSimulatedLoad bool
	MessagesToUse    int
	Messages         []LoadingMessage

	orch   *orchestrator.Orchestrator
	logger *slog.Logger
	pick   func(n int) int
}

func newSplashScreen(deps Deps, props map[string]any) (*SplashScreenEntryPoint, error) {
	home := engine.SceneRef(engine.PropString(props, "homeScene", ""))
	if home.IsZero() {
		return nil, errors.New("homeScene is required")
	}

	s := &SplashScreenEntryPoint{
		BaseEntryPoint:   baseFromProps(props),
		HomeScene:        home,
		UseSimulatedLoad: engine.PropBool(props, "useSimulatedLoad", true),
		MessagesToUse:    engine.PropInt(props, "messagesToUse", 5),
		orch:             deps.Orchestrator,
		logger:           deps.Logger,
		pick:             rand.IntN,
	}
	for _, m := range engine.PropMaps(props, "messages") {
		s.Messages = append(s.Messages, LoadingMessage{
			Message:  engine.PropString(m, "message", ""),
			Duration: messageDuration(engine.PropInt(m, "duration", 0)),
		})
	}
	return s, nil
}

// messageDuration converts milliseconds, falling back to half a second.
func messageDuration(ms int) time.Duration {
	if ms <= 0 {
		return defaultMessageDuration
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SplashScreenEntryPoint) OnReady(ctx context.Context) error {
	if err := s.BaseEntryPoint.OnReady(ctx); err != nil {
		return err
	}

	if s.UseSimulatedLoad && len(s.Messages) > 0 {
		ui, ok := orchestrator.ComponentInRoot[*components.SplashScreenUI](s.Scene())
		if !ok {
			s.logger.Warn("splash screen has no SplashScreenUI", "scene", s.Scene().Name)
		}
		progress := func(p loading.Progress) {
			if ui != nil {
				ui.UpdateProgress(p)
			}
		}
		if err := s.simulatedBatch().Process(ctx, progress); err != nil {
			return err
		}
	}

	return s.orch.LoadScene(ctx, orchestrator.LoadSingle, s.HomeScene, nil)
}

func (s *SplashScreenEntryPoint) simulatedBatch() *loading.Batch {
	batch := loading.NewBatch()
	for i := 0; i < s.MessagesToUse; i++ {
		msg := s.Messages[s.pick(len(s.Messages))]
		_ = batch.AddAsync(func(ctx context.Context) error {
			return sleep(ctx, msg.Duration)
		}, msg.Message)
	}
	return batch
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
