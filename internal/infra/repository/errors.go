package repository

import (
	"errors"

	"gorm.io/gorm"
)

// notFound traduz gorm.ErrRecordNotFound para o erro do domínio.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
