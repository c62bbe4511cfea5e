package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// ValidatePlayer sanity-checks a player record before it is written into the
// store. The server is the source of truth, but a structurally broken record
// (missing identity, negative maxima) would poison every derived stat.
func ValidatePlayer(p *Player) error {
	if p == nil {
		return errors.New("player is nil")
	}
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(err, "invalid player record")
	}
	return nil
}
