// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/testutil"
)

func newRecordHandler(t *testing.T) (*RecordHandler, *testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	return NewRecordHandler(deps.conn, deps.log, deps.rb, deps.cfg), deps
}

func sessionFor(t *testing.T, deps *testDeps, identityID string) map[string]string {
	t.Helper()
	testutil.CreateTestCredential(t, deps.conn, identityID, "Juror "+identityID, "Org")
	token := testutil.CreateTestSession(t, deps.conn, identityID)
	return map[string]string{SessionTokenHeader: token}
}

func postRecords(t *testing.T, h *RecordHandler, headers map[string]string, records ...models.EvaluationRecord) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", "/records", models.AppendRequest{Records: records}, headers)
	w := httptest.NewRecorder()
	h.Append(w, req)
	return w
}

func TestAppendRecords(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")

	w := postRecords(t, h, headers,
		models.EvaluationRecord{
			IdentityID: "juror1", GroupID: "g1", RecordedAt: "1000",
			Status: models.StatusInProgress,
			Scores: models.ScoreMap{"c1": testutil.Score(7)},
		},
		models.EvaluationRecord{
			IdentityID: "juror1", GroupID: "g2", RecordedAt: "1001",
			Status: models.StatusGroupSubmitted,
			Scores: models.ScoreMap{"c1": testutil.Score(5), "c2": testutil.Score(6), "c3": testutil.Score(9)},
		},
	)
	testutil.AssertStatus(t, w, http.StatusAccepted)

	var resp models.AppendResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Accepted != 2 {
		t.Errorf("accepted = %d, want 2", resp.Accepted)
	}

	records, err := deps.log.Query(db.Filter{IdentityID: "juror1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("log holds %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.ID == "" {
			t.Error("record stored without an assigned id")
		}
	}
}

func TestAppendValidation(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")

	base := models.EvaluationRecord{
		IdentityID: "juror1", GroupID: "g1", RecordedAt: "1000",
		Status: models.StatusInProgress,
	}

	tests := []struct {
		name   string
		mutate func(*models.EvaluationRecord)
		want   int
	}{
		{"foreign identity", func(r *models.EvaluationRecord) { r.IdentityID = "someone-else" }, http.StatusForbidden},
		{"unknown group", func(r *models.EvaluationRecord) { r.GroupID = "g99" }, http.StatusBadRequest},
		{"unknown status", func(r *models.EvaluationRecord) { r.Status = "done" }, http.StatusBadRequest},
		{"unknown criterion", func(r *models.EvaluationRecord) {
			r.Scores = models.ScoreMap{"c9": testutil.Score(5)}
		}, http.StatusBadRequest},
		{"score above max", func(r *models.EvaluationRecord) {
			r.Scores = models.ScoreMap{"c1": testutil.Score(11)}
		}, http.StatusBadRequest},
		{"negative score", func(r *models.EvaluationRecord) {
			r.Scores = models.ScoreMap{"c1": testutil.Score(-1)}
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := base
			tt.mutate(&rec)
			w := postRecords(t, h, headers, rec)
			testutil.AssertStatus(t, w, tt.want)
		})
	}

	// A nil score entry is an empty criterion, not a range violation
	rec := base
	rec.Scores = models.ScoreMap{"c1": nil}
	testutil.AssertStatus(t, postRecords(t, h, headers, rec), http.StatusAccepted)
}

func TestAppendRequiresSession(t *testing.T) {
	h, _ := newRecordHandler(t)

	rec := models.EvaluationRecord{IdentityID: "juror1", GroupID: "g1", Status: models.StatusInProgress}

	w := postRecords(t, h, nil, rec)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = postRecords(t, h, map[string]string{SessionTokenHeader: "bogus"}, rec)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestAppendRejectsEmptyBatch(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")
	testutil.AssertStatus(t, postRecords(t, h, headers), http.StatusBadRequest)
}

func TestListMyRecords(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")

	// Two writes for g1; the later timestamp must win on read
	postRecords(t, h, headers,
		models.EvaluationRecord{
			IdentityID: "juror1", GroupID: "g1", RecordedAt: "1000",
			Status: models.StatusInProgress,
			Scores: models.ScoreMap{"c1": testutil.Score(3)},
		},
		models.EvaluationRecord{
			IdentityID: "juror1", GroupID: "g1", RecordedAt: "2000",
			Status: models.StatusInProgress,
			Scores: models.ScoreMap{"c1": testutil.Score(8), "c2": testutil.Score(6)},
		},
	)

	req := testutil.MakeRequest("GET", "/jurors/juror1/records", nil, headers)
	req.SetPathValue("id", "juror1")
	w := httptest.NewRecorder()
	h.ListMyRecords(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListRecordsResponse
	testutil.AssertJSON(t, w, &resp)

	// One state per rubric group, in rubric order
	if len(resp.Records) != 3 {
		t.Fatalf("got %d states, want one per group", len(resp.Records))
	}
	g1 := resp.Records[0]
	if g1.GroupID != "g1" || g1.Status != models.StatusInProgress {
		t.Errorf("g1 state = %s/%s", g1.GroupID, g1.Status)
	}
	if g1.Record == nil || g1.Record.RecordedAt != "2000" {
		t.Error("later write did not win reconciliation")
	}
	for _, st := range resp.Records[1:] {
		if st.Status != models.StatusNotStarted || st.Record != nil {
			t.Errorf("untouched group %s = %s", st.GroupID, st.Status)
		}
	}

	// 2 of 9 criteria filled
	want := 2.0 / 9.0
	if diff := resp.Completion - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("completion = %v, want %v", resp.Completion, want)
	}
}

func TestListMyRecordsScopedToSession(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")

	req := testutil.MakeRequest("GET", "/jurors/juror2/records", nil, headers)
	req.SetPathValue("id", "juror2")
	w := httptest.NewRecorder()
	h.ListMyRecords(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

// fillAllGroups posts a complete group_submitted record for every group.
func fillAllGroups(t *testing.T, h *RecordHandler, headers map[string]string, identityID string) {
	t.Helper()
	for _, groupID := range []string{"g1", "g2", "g3"} {
		w := postRecords(t, h, headers, models.EvaluationRecord{
			IdentityID: identityID, GroupID: groupID, RecordedAt: "1000",
			Status: models.StatusGroupSubmitted,
			Scores: models.ScoreMap{"c1": testutil.Score(7), "c2": testutil.Score(8), "c3": testutil.Score(9)},
		})
		testutil.AssertStatus(t, w, http.StatusAccepted)
	}
}

func finalizedCount(t *testing.T, h *RecordHandler, headers map[string]string, identityID string) int {
	t.Helper()
	req := testutil.MakeRequest("GET", "/jurors/"+identityID+"/finalized-count", nil, headers)
	req.SetPathValue("id", identityID)
	w := httptest.NewRecorder()
	h.CountFinalized(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.FinalizedCountResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.Count
}

func TestFinalizeRequiresCompleteness(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")

	// Only g1 scored, and only partially
	postRecords(t, h, headers, models.EvaluationRecord{
		IdentityID: "juror1", GroupID: "g1", RecordedAt: "1000",
		Status: models.StatusInProgress,
		Scores: models.ScoreMap{"c1": testutil.Score(7)},
	})

	req := testutil.MakeRequest("POST", "/jurors/juror1/finalize", nil, headers)
	req.SetPathValue("id", "juror1")
	w := httptest.NewRecorder()
	h.Finalize(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestFinalizeAndCount(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")
	fillAllGroups(t, h, headers, "juror1")

	if n := finalizedCount(t, h, headers, "juror1"); n != 0 {
		t.Fatalf("finalized count before finalize = %d", n)
	}

	req := testutil.MakeRequest("POST", "/jurors/juror1/finalize", nil, headers)
	req.SetPathValue("id", "juror1")
	w := httptest.NewRecorder()
	h.Finalize(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.FinalizeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Finalized != 3 {
		t.Errorf("finalized = %d, want 3", resp.Finalized)
	}

	if n := finalizedCount(t, h, headers, "juror1"); n != 3 {
		t.Errorf("finalized count after finalize = %d, want 3", n)
	}
}

func TestReopenAfterFinalize(t *testing.T) {
	h, deps := newRecordHandler(t)
	headers := sessionFor(t, deps, "juror1")
	fillAllGroups(t, h, headers, "juror1")

	req := testutil.MakeRequest("POST", "/jurors/juror1/finalize", nil, headers)
	req.SetPathValue("id", "juror1")
	h.Finalize(httptest.NewRecorder(), req)

	req = testutil.MakeRequest("POST", "/jurors/juror1/reopen", nil, headers)
	req.SetPathValue("id", "juror1")
	w := httptest.NewRecorder()
	h.Reopen(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ReopenResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Reopened != 3 {
		t.Errorf("reopened = %d, want 3", resp.Reopened)
	}

	// Reconciled view now shows editing records, downgraded but with the
	// scores intact, and nothing counts as finalized anymore
	if n := finalizedCount(t, h, headers, "juror1"); n != 0 {
		t.Errorf("finalized count after reopen = %d, want 0", n)
	}

	req = testutil.MakeRequest("GET", "/jurors/juror1/records", nil, headers)
	req.SetPathValue("id", "juror1")
	w = httptest.NewRecorder()
	h.ListMyRecords(w, req)

	var list models.ListRecordsResponse
	testutil.AssertJSON(t, w, &list)
	for _, st := range list.Records {
		if st.Status != models.StatusGroupSubmitted {
			t.Errorf("group %s status = %s after reopen", st.GroupID, st.Status)
		}
		if st.Record == nil || st.Record.EditingFlag != models.EditingActive {
			t.Errorf("group %s not flagged editing", st.GroupID)
		}
		if st.Record != nil && st.Record.Scores.Filled() != 3 {
			t.Errorf("group %s lost scores on reopen", st.GroupID)
		}
	}
}
