// Package fixtures provides recording doubles shared by command wiring tests.
package fixtures

import command "github.com/goliatone/go-command"

// RecordingRegistry captures command handlers registered during wiring.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records the handler, returning the configured error when set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration captures a single cron wiring invocation.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler any
}

// CronRecorder records calls to a cron registrar function.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs a cron recorder with an optional failure error.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{
		Registrations: make([]CronRegistration, 0),
	}
}

// Fail configures the recorder to return the supplied error on registration.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Registrar returns a registrar function that records invocations.
func (c *CronRecorder) Registrar() func(command.HandlerConfig, any) error {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		c.Registrations = append(c.Registrations, CronRegistration{
			Config:  cfg,
			Handler: handler,
		})
		return nil
	}
}
