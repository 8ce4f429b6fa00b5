package pdf

import "fmt"

// Stage etapa del ciclo de vida de una sesión del motor.
//
//	Idle → Launching → PageOpen → ContentSet → Rendering → Closed
//
// Cualquier etapa puede pasar directamente a Closed (fallo o cancelación).
type Stage string

const (
	StageIdle       Stage = "idle"
	StageLaunching  Stage = "launching"
	StagePageOpen   Stage = "page_open"
	StageContentSet Stage = "content_set"
	StageRendering  Stage = "rendering"
	StageClosed     Stage = "closed"
)

var nextStage = map[Stage]Stage{
	StageIdle:       StageLaunching,
	StageLaunching:  StagePageOpen,
	StagePageOpen:   StageContentSet,
	StageContentSet: StageRendering,
	StageRendering:  StageClosed,
}

// lifecycle mantiene la etapa actual y rechaza transiciones fuera de orden.
type lifecycle struct {
	stage Stage
}

func newLifecycle() *lifecycle { return &lifecycle{stage: StageIdle} }

// advance pasa a la etapa to; sólo se permite la siguiente en orden o Closed.
func (l *lifecycle) advance(to Stage) error {
	if l.stage == StageClosed {
		return fmt.Errorf("sesión cerrada: no se puede pasar a %s", to)
	}
	if to != StageClosed && nextStage[l.stage] != to {
		return fmt.Errorf("transición inválida %s → %s", l.stage, to)
	}
	l.stage = to
	return nil
}

func (l *lifecycle) current() Stage { return l.stage }
