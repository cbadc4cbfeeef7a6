// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/yamdb", convertToPgx5DSN("postgres://u:p@db:5432/yamdb"))
	assert.Equal(t, "pgx5://db/yamdb", convertToPgx5DSN("postgresql://db/yamdb"))
	assert.Equal(t, "pgx5://db/yamdb", convertToPgx5DSN("pgx5://db/yamdb"))
	assert.Equal(t, "host=db dbname=yamdb", convertToPgx5DSN("host=db dbname=yamdb"))
}
