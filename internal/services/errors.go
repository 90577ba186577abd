package services

import (
	"errors"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

// translate maps repository sentinels onto domain errors. notFound is returned
// for repositories.ErrNotFound; anything unknown passes through unchanged.
func translate(err error, notFound *models.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	var dup *repositories.DuplicateError
	if errors.As(err, &dup) {
		msg := "Record already exists"
		switch dup.Field {
		case "email":
			msg = "A member with this email already exists"
		case "loginId":
			msg = "A member with this Login ID already exists"
		}
		return models.WrapError(models.ErrCodeDuplicate, msg, err)
	}
	return err
}
