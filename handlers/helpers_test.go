// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"

	"github.com/huguryildiz/senior-design-jury/cliparse"
	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/rubric"
	"github.com/huguryildiz/senior-design-jury/testutil"
)

type testDeps struct {
	conn *sql.DB
	log  *db.RecordLog
	rb   *rubric.Rubric
	cfg  cliparse.Config
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return &testDeps{
		conn: conn,
		log:  db.NewRecordLog(conn),
		rb:   testutil.TestRubric(),
		cfg:  testutil.GetTestConfig(),
	}
}
