package config

import "ballpit/session"

// SessionOptions maps settings onto what every hosted session runs with.
func (s Settings) SessionOptions() session.Options {
	return session.Options{
		Config:         s.Sim,
		Palette:        s.Palette,
		BroadcastEvery: s.BroadcastEvery,
		MaxTicks:       s.MaxTicks,
	}
}
