package groups_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aulahub/aulahub/internal/app/features/groups"
	coursestore "github.com/aulahub/aulahub/internal/app/store/courses"
	"github.com/aulahub/aulahub/internal/app/system/auth"
	"github.com/aulahub/aulahub/internal/app/system/lifecycle"
	"github.com/aulahub/aulahub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*mongo.Database, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := groups.NewHandler(db, zap.NewNop())
	return db, groups.Routes(h)
}

func do(router http.Handler, method, target, body string, u auth.TokenUser) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, testutil.AsUser(req, u))
	return rr
}

type groupResponse struct {
	Message string              `json:"message"`
	Group   lifecycle.GroupView `json:"group"`
}

func createGroup(t *testing.T, router http.Handler, teacher auth.TokenUser, courseID string) lifecycle.GroupView {
	t.Helper()
	rr := do(router, http.MethodPost, "/", `{
		"courseId": "`+courseID+`",
		"teacherName": "Prof X",
		"startDate": "2024-01-01",
		"endDate": "2024-03-01",
		"courseCost": 1000,
		"students": [{"fullName": "Ana", "moneyProvided": 500}]
	}`, teacher)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp groupResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("create group: bad body: %v", err)
	}
	return resp.Group
}

func TestCreateAndListGroups(t *testing.T) {
	db, router := setup(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := testutil.TeacherUser()
	course := fixtures.CreateCourse(ctx, "MATH")

	g := createGroup(t, router, teacher, course.ID.Hex())
	if len(g.Students) != 1 || g.Students[0].PaymentStatus != "partial" {
		t.Fatalf("unexpected roster in response: %+v", g.Students)
	}

	// The caller's identity becomes the group's teacher.
	rr := do(router, http.MethodGet, "/", "", teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rr.Code)
	}
	var mine []lifecycle.GroupView
	if err := json.Unmarshal(rr.Body.Bytes(), &mine); err != nil {
		t.Fatalf("list: bad body: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != g.ID {
		t.Fatalf("teacher should see their group, got %d", len(mine))
	}

	// Another teacher sees an empty list, not an error.
	rr = do(router, http.MethodGet, "/", "", testutil.TeacherUser())
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Errorf("expected empty array for other teacher, got %s", body)
	}

	// Same course again: conflict.
	rr = do(router, http.MethodPost, "/", `{
		"courseId": "`+course.ID.Hex()+`",
		"teacherName": "Prof Y",
		"startDate": "2024-01-01",
		"endDate": "2024-03-01"
	}`, teacher)
	if rr.Code != http.StatusConflict {
		t.Errorf("reused course: expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateGroup_BadInput(t *testing.T) {
	_, router := setup(t)
	teacher := testutil.TeacherUser()

	rr := do(router, http.MethodPost, "/", `{"courseId":"nope"}`, teacher)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed courseId: expected 400, got %d", rr.Code)
	}

	rr = do(router, http.MethodPost, "/", `not json`, teacher)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad json: expected 400, got %d", rr.Code)
	}

	rr = do(router, http.MethodPost, "/", `{"teacherName":"Prof X"}`, teacher)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing fields: expected 400, got %d", rr.Code)
	}
}

func TestUpdateGroup(t *testing.T) {
	db, router := setup(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := testutil.TeacherUser()
	course := fixtures.CreateCourse(ctx, "ART")
	g := createGroup(t, router, teacher, course.ID.Hex())

	rr := do(router, http.MethodPut, "/"+g.ID.Hex(), `{"teacherName":"Prof Z","courseCost":1500}`, teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp groupResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("update: bad body: %v", err)
	}
	if resp.Group.TeacherName != "Prof Z" || resp.Group.CourseCost != 1500 {
		t.Errorf("patch not applied: %+v", resp.Group)
	}

	// Rebinding to another course is refused outright.
	other := fixtures.CreateCourse(ctx, "MUSIC")
	rr = do(router, http.MethodPut, "/"+g.ID.Hex(), `{"courseId":"`+other.ID.Hex()+`"}`, teacher)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("course rebind: expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestDeleteGroup_ReleasesCourse(t *testing.T) {
	db, router := setup(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := testutil.TeacherUser()
	course := fixtures.CreateCourse(ctx, "MATH")
	g := createGroup(t, router, teacher, course.ID.Hex())

	rr := do(router, http.MethodDelete, "/"+g.ID.Hex(), "", teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	got, err := coursestore.New(db).GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsAvailable {
		t.Error("deleting the group must free the course for reuse")
	}

	// The freed course accepts a new group.
	createGroup(t, router, teacher, course.ID.Hex())
}

func TestRosterEndpoints(t *testing.T) {
	db, router := setup(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := testutil.TeacherUser()
	course := fixtures.CreateCourse(ctx, "MATH")
	g := createGroup(t, router, teacher, course.ID.Hex())

	rr := do(router, http.MethodPost, "/"+g.ID.Hex()+"/students",
		`{"fullName":"Luis","moneyProvided":1000}`, teacher)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add student: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var added struct {
		Student lifecycle.StudentView `json:"student"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &added); err != nil {
		t.Fatalf("add student: bad body: %v", err)
	}
	if added.Student.PaymentStatus != "paid" {
		t.Errorf("expected paid for 1000/1000, got %q", added.Student.PaymentStatus)
	}

	rr = do(router, http.MethodPut, "/"+g.ID.Hex()+"/students/"+added.Student.ID.Hex(),
		`{"fullName":"Luis P."}`, teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("update student: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(router, http.MethodDelete, "/"+g.ID.Hex()+"/students/"+added.Student.ID.Hex(), "", teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("remove student: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Removing again: the roster no longer holds the id.
	rr = do(router, http.MethodDelete, "/"+g.ID.Hex()+"/students/"+added.Student.ID.Hex(), "", teacher)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second remove: expected 404, got %d", rr.Code)
	}
}

func TestAttendanceEndpoints(t *testing.T) {
	db, router := setup(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := testutil.TeacherUser()
	course := fixtures.CreateCourse(ctx, "MATH")
	g := createGroup(t, router, teacher, course.ID.Hex())

	rr := do(router, http.MethodGet, "/"+g.ID.Hex()+"/attendance", "", teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("get attendance: expected 200, got %d", rr.Code)
	}
	var rows []lifecycle.AttendanceRow
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("get attendance: bad body: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Attendance) != 8 {
		t.Fatalf("expected one row of 8 slots, got %+v", rows)
	}

	rows[0].Attendance[0] = true
	body, err := json.Marshal(map[string]any{"rows": rows})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	rr = do(router, http.MethodPost, "/"+g.ID.Hex()+"/attendance", string(body), teacher)
	if rr.Code != http.StatusOK {
		t.Fatalf("save attendance: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Short arrays are a 400, not a partial write.
	rows[0].Attendance = rows[0].Attendance[:2]
	body, err = json.Marshal(map[string]any{"rows": rows})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	rr = do(router, http.MethodPost, "/"+g.ID.Hex()+"/attendance", string(body), teacher)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("short arrays: expected 400, got %d", rr.Code)
	}
}
