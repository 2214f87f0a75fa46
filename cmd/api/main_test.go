package main

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions/internal/notify"
)

func TestShutdown_ClosesDatabaseOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	flushed := false
	err = shutdown(context.Background(), fiber.New(), notify.NewDispatcher(notify.LogNotifier{}, nil),
		func(context.Context) error { flushed = true; return nil }, db)

	require.NoError(t, err)
	assert.True(t, flushed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShutdown_JoinsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose().WillReturnError(errors.New("close failed"))

	err = shutdown(context.Background(), fiber.New(), notify.NewDispatcher(notify.LogNotifier{}, nil),
		func(context.Context) error { return errors.New("flush failed") }, db)

	require.Error(t, err)
	assert.ErrorContains(t, err, "flush failed")
	assert.ErrorContains(t, err, "close failed")
}
