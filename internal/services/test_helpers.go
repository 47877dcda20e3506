package services

import (
	"io"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testProduct(id uint64, name string, price float64, stock int64) *domain.Product {
	return &domain.Product{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

const (
	testCartKey = "session-1"
	testUserID  = uint64(7)
)
