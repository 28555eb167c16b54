package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"mtuwatcher/internal/enforcer"
	"mtuwatcher/internal/ifconfig"
	"mtuwatcher/internal/ifmon"
	"mtuwatcher/internal/privilege"
	"mtuwatcher/internal/target"
)

// App represents the application context
type App struct {
	Target       target.Target
	Handle       ifconfig.Handle
	Source       ifmon.Source
	Configurator ifconfig.Configurator
	Enforcer     *enforcer.Enforcer
	Log          logrus.FieldLogger
}

// Platform opens the OS facilities the daemon needs. Tests replace it.
type Platform struct {
	Elevate          func() error
	Resolve          func(name string) (ifconfig.Handle, error)
	OpenConfigurator func(h ifconfig.Handle) (ifconfig.Configurator, error)
	OpenSource       func() (ifmon.Source, error)
}

// DefaultPlatform uses the real kernel interfaces.
var DefaultPlatform = Platform{
	Elevate:          privilege.Ensure,
	Resolve:          ifconfig.Resolve,
	OpenConfigurator: ifconfig.Open,
	OpenSource:       ifmon.Open,
}

// New creates a new application instance. Nothing on the system is touched
// before privileges are confirmed.
func New(t target.Target, p Platform, log logrus.FieldLogger) (*App, error) {
	if err := p.Elevate(); err != nil {
		return nil, err
	}

	handle, err := p.Resolve(t.Interface)
	if err != nil {
		return nil, fmt.Errorf("error getting interface: %w", err)
	}

	conf, err := p.OpenConfigurator(handle)
	if err != nil {
		return nil, err
	}

	// Subscribe before the baseline check so no change slips in between.
	src, err := p.OpenSource()
	if err != nil {
		conf.Close()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"interface": handle.Name,
		"index":     handle.Index,
		"mtu":       t.MTU,
	}).Debug("Watching interface")

	return &App{
		Target:       t,
		Handle:       handle,
		Source:       src,
		Configurator: conf,
		Enforcer: enforcer.New(enforcer.Config{
			Target:       t,
			Handle:       handle,
			Source:       src,
			Configurator: conf,
			Log:          log,
		}),
		Log: log,
	}, nil
}

// Run enforces the target MTU until a fatal error occurs.
func (a *App) Run() error {
	return a.Enforcer.Run()
}

// Close closes the application and releases resources
func (a *App) Close() error {
	srcErr := a.Source.Close()
	confErr := a.Configurator.Close()
	if srcErr != nil {
		return srcErr
	}
	return confErr
}
