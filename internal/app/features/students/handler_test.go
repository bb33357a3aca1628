package students_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aulahub/aulahub/internal/app/features/students"
	"github.com/aulahub/aulahub/internal/domain/models"
	"github.com/aulahub/aulahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func put(router http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, testutil.AsUser(req, testutil.TeacherUser()))
	return rr
}

func TestUpdatePayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := students.Routes(students.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Ana", "MATH", 0)

	rr := put(router, "/"+st.ID.Hex()+"/payment", `{"moneyProvided":750}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Student models.Student `json:"student"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Student.MoneyProvided != 750 {
		t.Errorf("payment not applied, got %d", resp.Student.MoneyProvided)
	}

	// The value overwrites; it does not accumulate.
	rr = put(router, "/"+st.ID.Hex()+"/payment", `{"moneyProvided":200}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Student.MoneyProvided != 200 {
		t.Errorf("expected overwrite to 200, got %d", resp.Student.MoneyProvided)
	}

	rr = put(router, "/"+st.ID.Hex()+"/payment", `{"moneyProvided":-5}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("negative amount: expected 400, got %d", rr.Code)
	}

	rr = put(router, "/"+primitive.NewObjectID().Hex()+"/payment", `{"moneyProvided":100}`)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown student: expected 404, got %d", rr.Code)
	}

	rr = put(router, "/not-an-id/payment", `{"moneyProvided":100}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed id: expected 400, got %d", rr.Code)
	}
}
