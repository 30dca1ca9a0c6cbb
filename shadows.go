package main

import (
	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/config"
	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/shadow"
	"github.com/NaveLIL/erez-chrome/utils"
)

// shadowHost is the window the drop shadow follows and registers with.
type shadowHost interface {
	shadow.Target
	AddObserver(o chrome.Observer)
	RemoveObserver(o chrome.Observer)
	AddLifecycle(l chrome.Lifecycle) error
	RemoveLifecycle(l chrome.Lifecycle)
}

// shadowSwitch creates, updates or tears down the drop shadow to match the
// shadow section of the configuration.
type shadowSwitch struct {
	host    shadowHost
	factory shadow.OverlayFactory
	manager *shadow.Manager
	log     *logrus.Entry
}

func newShadowSwitch(host shadowHost, factory shadow.OverlayFactory) *shadowSwitch {
	return &shadowSwitch{
		host:    host,
		factory: factory,
		log:     logger.Get().Component("shadow"),
	}
}

// apply brings the shadow in line with cfg.
func (s *shadowSwitch) apply(cfg *config.Config) error {
	if !cfg.Shadow.Enabled {
		s.disable()
		return nil
	}

	opts, err := shadowOptions(cfg)
	if err != nil {
		return err
	}
	if s.manager != nil {
		return s.manager.SetOptions(opts)
	}

	m, err := shadow.NewManager(s.host, s.factory, opts)
	if err != nil {
		return err
	}
	if err := s.host.AddLifecycle(m); err != nil {
		s.host.RemoveLifecycle(m)
		m.Close()
		return err
	}
	s.host.AddObserver(m)
	s.manager = m

	s.log.Infof("Drop shadow %dpx, active %s, inactive %s",
		opts.Thickness, utils.FormatHexColor(opts.Color), utils.FormatHexColor(opts.InactiveColor))
	return nil
}

// disable removes the shadow and destroys its overlays.
func (s *shadowSwitch) disable() {
	if s.manager == nil {
		return
	}
	s.host.RemoveObserver(s.manager)
	s.host.RemoveLifecycle(s.manager)
	s.manager.Close()
	s.manager = nil
	s.log.Info("Drop shadow disabled")
}
