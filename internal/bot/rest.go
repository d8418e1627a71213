package bot

import (
	"errors"

	"seina-bot/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// WrapRESTError adapts a discordgo REST failure for the retry loop: rate
// limits and server errors become StatusErrors the loop backs off on,
// permission and not-found responses become FatalErrors, everything else is
// returned unchanged.
func WrapRESTError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *discordgo.RateLimitError
	if errors.As(err, &rateErr) {
		return &retrylimit.StatusError{Code: 429, Err: err}
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		code := restErr.Response.StatusCode
		switch {
		case code == 403 || code == 404:
			return &retrylimit.FatalError{Err: err}
		case code == 429 || code >= 500:
			return &retrylimit.StatusError{Code: code, Err: err}
		}
	}
	return err
}
