package notificationstore_test

import (
	"testing"

	notificationstore "github.com/aulahub/aulahub/internal/app/store/notifications"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/domain/models"
	"github.com/aulahub/aulahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ListFor_Targeting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	teacher := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Notification{
		RoleTarget: "admin",
		Type:       models.NotificationNewUser,
		Title:      "New user registration",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Notification{
		Recipient: &teacher,
		Type:      models.NotificationGeneral,
		Title:     "For one teacher",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Notification{
		RoleTarget: models.RoleTargetAll,
		Type:       models.NotificationGeneral,
		Title:      "Broadcast",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	adminView, err := store.ListFor(ctx, admin, "admin")
	if err != nil {
		t.Fatalf("ListFor admin failed: %v", err)
	}
	if len(adminView) != 2 {
		t.Errorf("admin should see role + broadcast rows, got %d", len(adminView))
	}

	teacherView, err := store.ListFor(ctx, teacher, "teacher")
	if err != nil {
		t.Fatalf("ListFor teacher failed: %v", err)
	}
	if len(teacherView) != 2 {
		t.Errorf("teacher should see recipient + broadcast rows, got %d", len(teacherView))
	}
	for _, n := range teacherView {
		if n.Type == models.NotificationNewUser {
			t.Error("teacher must not see the admin-targeted row")
		}
	}
}

func TestStore_MarkRead_IsPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin1 := primitive.NewObjectID()
	admin2 := primitive.NewObjectID()

	n, err := store.Create(ctx, models.Notification{
		RoleTarget: "admin",
		Type:       models.NotificationNewUser,
		Title:      "pending registration",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.MarkRead(ctx, n.ID, admin1); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	// Idempotent set-add.
	if err := store.MarkRead(ctx, n.ID, admin1); err != nil {
		t.Fatalf("repeat MarkRead failed: %v", err)
	}

	view1, err := store.ListFor(ctx, admin1, "admin")
	if err != nil {
		t.Fatalf("ListFor failed: %v", err)
	}
	if len(view1) != 0 {
		t.Errorf("dismissed row should be hidden from admin1, got %d rows", len(view1))
	}

	view2, err := store.ListFor(ctx, admin2, "admin")
	if err != nil {
		t.Fatalf("ListFor failed: %v", err)
	}
	if len(view2) != 1 {
		t.Errorf("admin2 should still see the row, got %d rows", len(view2))
	}
}

func TestStore_Delete_RemovesForEveryone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.Create(ctx, models.Notification{
		RoleTarget: "admin",
		Type:       models.NotificationNewUser,
		Title:      "pending registration",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	for _, admin := range []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()} {
		view, err := store.ListFor(ctx, admin, "admin")
		if err != nil {
			t.Fatalf("ListFor failed: %v", err)
		}
		if len(view) != 0 {
			t.Errorf("deleted row must be gone for every admin, got %d rows", len(view))
		}
	}

	if err := store.Delete(ctx, primitive.NewObjectID()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for unknown id, got %v", err)
	}
}
