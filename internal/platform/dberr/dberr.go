// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/filmdeck/internal/platform/apperr"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// Wrap inspects a database error and wraps it into an [apperr.AppError].
// The action names the failed operation in the logged cause.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Record")
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
		conflict := apperr.Conflict("Record already exists")
		conflict.Cause = fmt.Errorf("%s: %w", action, err)
		return conflict
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// WrapLoad is [Wrap] for reads that feed the catalogue loader: anything that
// is not a missing row becomes a LOAD_ERROR.
func WrapLoad(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Record")
	}
	return apperr.LoadError("Catalogue mirror unavailable", fmt.Errorf("%s: %w", action, err))
}
