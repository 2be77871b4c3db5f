package service

import (
	"errors"

	"github.com/alexanderramin/repcoach/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
