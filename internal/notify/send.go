// Package notify renders alert records into messages and delivers them
// through Shoutrrr service URLs.
package notify

import (
	"fmt"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Service is a fully configured notification target.
type Service struct {
	Name     string
	URL      string
	Template string            // message template, DefaultTemplate when empty
	Params   map[string]string // service-specific options (title, priority, ...)
}

// Send delivers a message to a single service via Shoutrrr.
func Send(svc Service, message string) error {
	sender, err := shoutrrr.CreateSender(svc.URL)
	if err != nil {
		return fmt.Errorf("creating sender for %s: %w", svc.Name, err)
	}

	params := types.Params(svc.Params)
	errs := sender.Send(message, &params)
	for _, e := range errs {
		if e != nil {
			return fmt.Errorf("sending to %s: %w", svc.Name, e)
		}
	}

	return nil
}
