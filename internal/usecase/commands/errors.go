package commands

import (
	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/errs"
)

// translateNotFound replaces a storage NOT_FOUND with the domain sentinel.
func translateNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return err
}

var errInvariantBroken = errs.New("slot state changed inside a locked section")
