package studentstore_test

import (
	"testing"

	studentstore "github.com/aulahub/aulahub/internal/app/store/students"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/domain/models"
	"github.com/aulahub/aulahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateMany_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateMany(ctx, "MATH", []studentstore.Entry{
		{FullName: "Ana", MoneyProvided: 0},
		{FullName: "Luis", MoneyProvided: 500},
	})
	if err != nil {
		t.Fatalf("CreateMany failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 students, got %d", len(created))
	}
	for _, st := range created {
		if st.GroupName != "MATH" {
			t.Errorf("expected groupName MATH, got %q", st.GroupName)
		}
		if len(st.Attendance) != models.SessionCount || len(st.Activities) != models.SessionCount {
			t.Fatalf("expected %d-slot arrays", models.SessionCount)
		}
		for i := range st.Attendance {
			if st.Attendance[i] || st.Activities[i] {
				t.Error("attendance and activities should default to false")
			}
		}
	}
}

func TestStore_UpdatePayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Ana", "MATH", 0)

	updated, err := store.UpdatePayment(ctx, st.ID, 400)
	if err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	if updated.MoneyProvided != 400 {
		t.Errorf("expected 400, got %d", updated.MoneyProvided)
	}

	if _, err := store.UpdatePayment(ctx, st.ID, -1); !apperr.Is(err, apperr.KindInvalid) {
		t.Errorf("expected Invalid for negative amount, got %v", err)
	}
	if _, err := store.UpdatePayment(ctx, primitive.NewObjectID(), 10); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for unknown student, got %v", err)
	}
}

func TestStore_UpdateAttendance_RejectsPartialArrays(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Ana", "MATH", 0)

	short := make([]bool, models.SessionCount-1)
	full := make([]bool, models.SessionCount)
	if _, err := store.UpdateAttendance(ctx, st.ID, short, full); !apperr.Is(err, apperr.KindInvalid) {
		t.Errorf("expected Invalid for short attendance array, got %v", err)
	}
	if _, err := store.UpdateAttendance(ctx, st.ID, full, short); !apperr.Is(err, apperr.KindInvalid) {
		t.Errorf("expected Invalid for short activities array, got %v", err)
	}

	full[0], full[3] = true, true
	updated, err := store.UpdateAttendance(ctx, st.ID, full, make([]bool, models.SessionCount))
	if err != nil {
		t.Fatalf("UpdateAttendance failed: %v", err)
	}
	if !updated.Attendance[0] || !updated.Attendance[3] {
		t.Error("attendance marks were not persisted")
	}
}

func TestStore_DeleteMany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateStudent(ctx, "Ana", "MATH", 0)
	b := fixtures.CreateStudent(ctx, "Luis", "MATH", 0)
	keep := fixtures.CreateStudent(ctx, "Mar", "ART", 0)

	n, err := store.DeleteMany(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deletions, got %d", n)
	}
	if _, err := store.GetByID(ctx, a.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
	if _, err := store.GetByID(ctx, keep.ID); err != nil {
		t.Errorf("unrelated student should survive, got %v", err)
	}
}

func TestStudent_PaymentStatus(t *testing.T) {
	cases := []struct {
		money, cost int
		want        string
	}{
		{0, 1000, models.PaymentUnpaid},
		{400, 1000, models.PaymentPartial},
		{1000, 1000, models.PaymentPaid},
		{1500, 1000, models.PaymentPaid},
	}
	for _, c := range cases {
		st := models.Student{MoneyProvided: c.money}
		if got := st.PaymentStatus(c.cost); got != c.want {
			t.Errorf("PaymentStatus(%d/%d) = %q, want %q", c.money, c.cost, got, c.want)
		}
	}
}
