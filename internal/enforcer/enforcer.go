// Package enforcer runs the loop that keeps an interface at its target MTU.
//
// The loop owns both the notification source and the configurator and runs
// on the calling goroutine. Its only suspension point is Source.Wait, which
// blocks without a timeout. Every failure other than an interrupted system
// call ends Run.
package enforcer

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"mtuwatcher/internal/ifconfig"
	"mtuwatcher/internal/ifmon"
	"mtuwatcher/internal/target"
	pkgerrors "mtuwatcher/pkg/errors"
)

// State is the loop's current phase.
type State int

const (
	StateIdle State = iota
	StateDraining
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraining:
		return "draining"
	case StateReconciling:
		return "reconciling"
	}
	return fmt.Sprintf("{State %d}", int(s))
}

// Config holds the enforcer's collaborators.
type Config struct {
	Target       target.Target
	Handle       ifconfig.Handle
	Source       ifmon.Source
	Configurator ifconfig.Configurator
	Log          logrus.FieldLogger
}

// Enforcer restores the target MTU whenever a notification shows drift.
type Enforcer struct {
	target target.Target
	src    ifmon.Source
	reader *ifmon.Reader
	conf   ifconfig.Configurator
	log    logrus.FieldLogger
	state  State
}

// New returns an Enforcer. The source must already be subscribed so that no
// change racing the baseline check is lost.
func New(cfg Config) *Enforcer {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Enforcer{
		target: cfg.Target,
		src:    cfg.Source,
		reader: ifmon.NewReader(cfg.Source, cfg.Handle.Index),
		conf:   cfg.Configurator,
		log: log.WithFields(logrus.Fields{
			"interface": cfg.Handle.Name,
			"index":     cfg.Handle.Index,
		}),
		state: StateReconciling,
	}
}

// State returns the loop's current phase.
func (e *Enforcer) State() State {
	return e.state
}

// Run performs the baseline reconciliation and then loops until a fatal
// error occurs, which it returns.
func (e *Enforcer) Run() error {
	if err := e.baseline(); err != nil {
		return err
	}
	for {
		if err := e.cycle(); err != nil {
			return err
		}
	}
}

// baseline checks the live MTU once, before any notification has arrived.
func (e *Enforcer) baseline() error {
	e.setState(StateReconciling)

	current, err := e.conf.MTU()
	if err != nil {
		return fmt.Errorf("failed to get initial MTU: %w", err)
	}
	if current == e.target.MTU {
		e.log.WithField("mtu", current).Debug("Interface MTU already at target")
		return nil
	}

	e.log.WithField("mtu", current).Infof("Current interface MTU is %d. Setting MTU.", current)
	if err := e.conf.SetMTU(e.target.MTU); err != nil {
		return fmt.Errorf("failed to set interface MTU: %w", err)
	}
	return nil
}

// cycle runs Idle, Draining and Reconciling once.
func (e *Enforcer) cycle() error {
	e.setState(StateIdle)
	if err := e.wait(); err != nil {
		return err
	}

	e.setState(StateDraining)
	observed, ok, err := e.reader.Drain()
	if err != nil {
		return err
	}

	e.setState(StateReconciling)
	return e.reconcile(observed, ok)
}

func (e *Enforcer) wait() error {
	for {
		err := e.src.Wait()
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return &pkgerrors.ChannelError{Op: "poll", Err: err}
		}
		return nil
	}
}

// reconcile writes the target MTU at most once per drain, and only when the
// drain observed a different value.
func (e *Enforcer) reconcile(observed uint32, ok bool) error {
	if !ok {
		e.log.Debug("No MTU change notified")
		return nil
	}
	if observed == e.target.MTU {
		e.log.WithField("mtu", observed).Debug("Interface MTU matches target")
		return nil
	}

	e.log.WithField("mtu", observed).Infof("Interface MTU changed to %d. Reverting back.", observed)
	if err := e.conf.SetMTU(e.target.MTU); err != nil {
		return fmt.Errorf("failed to set interface MTU: %w", err)
	}
	return nil
}

func (e *Enforcer) setState(s State) {
	if e.state == s {
		return
	}
	e.log.WithField("state", s).Debug("Enforcer state changed")
	e.state = s
}
