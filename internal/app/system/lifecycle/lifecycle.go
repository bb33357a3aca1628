// internal/app/system/lifecycle/lifecycle.go

// Package lifecycle coordinates the create/delete sequences that cross
// the courses, groups, students, and notifications collections. It is
// the only code allowed to flip course availability or mutate a group's
// roster, which keeps the one-active-group-per-course invariant in a
// single place.
package lifecycle

import (
	"context"
	"strings"

	coursestore "github.com/aulahub/aulahub/internal/app/store/courses"
	groupstore "github.com/aulahub/aulahub/internal/app/store/groups"
	notificationstore "github.com/aulahub/aulahub/internal/app/store/notifications"
	studentstore "github.com/aulahub/aulahub/internal/app/store/students"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Manager owns the group lifecycle state machine: Active (course
// reserved, students exist) to Deleted (course released, students
// removed). isApproved is an orthogonal flag, not a lifecycle state.
type Manager struct {
	courses       *coursestore.Store
	groups        *groupstore.Store
	students      *studentstore.Store
	notifications *notificationstore.Store
	log           *zap.Logger
}

func NewManager(
	courses *coursestore.Store,
	groups *groupstore.Store,
	students *studentstore.Store,
	notifications *notificationstore.Store,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		courses:       courses,
		groups:        groups,
		students:      students,
		notifications: notifications,
		log:           logger,
	}
}

// GroupView is a group with its students and course populated for
// responses. Each student carries its derived payment status.
type GroupView struct {
	models.Group
	Students []StudentView  `json:"students"`
	Course   *models.Course `json:"course,omitempty"`
}

type StudentView struct {
	models.Student
	PaymentStatus string `json:"paymentStatus"`
}

// CreateGroupInput is the caller-supplied part of a new group.
type CreateGroupInput struct {
	CourseID    primitive.ObjectID
	TeacherID   primitive.ObjectID
	TeacherName string
	StartDate   string
	EndDate     string
	CourseCost  int
	Students    []studentstore.Entry
}

func (in CreateGroupInput) validate() error {
	var missing []string
	if in.CourseID.IsZero() {
		missing = append(missing, "courseId")
	}
	if strings.TrimSpace(in.TeacherName) == "" {
		missing = append(missing, "teacherName")
	}
	if strings.TrimSpace(in.StartDate) == "" {
		missing = append(missing, "startDate")
	}
	if strings.TrimSpace(in.EndDate) == "" {
		missing = append(missing, "endDate")
	}
	if len(missing) > 0 {
		return apperr.Invalid("missing required fields: %s", strings.Join(missing, ", "))
	}
	if in.CourseCost < 0 {
		return apperr.Invalid("courseCost must not be negative")
	}
	return nil
}

// CreateGroup runs the whole creation sequence. The course flip is a
// single conditional update executed before any dependent insert, so two
// concurrent creations against one course cannot both pass; if a later
// step fails, the reservation is released and any inserted students are
// deleted before the error is returned.
func (m *Manager) CreateGroup(ctx context.Context, in CreateGroupInput) (GroupView, error) {
	if err := in.validate(); err != nil {
		return GroupView{}, err
	}

	course, err := m.courses.GetByID(ctx, in.CourseID)
	if err != nil {
		return GroupView{}, err
	}
	if !course.IsAvailable {
		return GroupView{}, apperr.Conflict("course already in use")
	}
	// The unique index on group names backs this too; checking first
	// yields a clean error instead of a storage constraint violation.
	exists, err := m.groups.ExistsByName(ctx, course.Name)
	if err != nil {
		return GroupView{}, err
	}
	if exists {
		return GroupView{}, apperr.Conflict("group name already exists")
	}

	groupID := primitive.NewObjectID()
	course, err = m.courses.Reserve(ctx, in.CourseID, groupID)
	if err != nil {
		return GroupView{}, err
	}

	students, err := m.students.CreateMany(ctx, course.Name, in.Students)
	if err != nil {
		m.compensate(ctx, in.CourseID, nil)
		return GroupView{}, err
	}
	studentIDs := make([]primitive.ObjectID, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}

	group, err := m.groups.Insert(ctx, models.Group{
		ID:          groupID,
		Name:        course.Name,
		CourseID:    course.ID,
		TeacherID:   in.TeacherID,
		TeacherName: in.TeacherName,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CourseCost:  in.CourseCost,
		IsApproved:  true,
		StudentIDs:  studentIDs,
	})
	if err != nil {
		m.compensate(ctx, in.CourseID, studentIDs)
		return GroupView{}, err
	}

	n := models.Notification{
		RoleTarget: models.RoleAdmin,
		Type:       models.NotificationNewGroup,
		Title:      "New group created",
		Message:    "Group " + group.Name + " was created by " + group.TeacherName + " and is awaiting review.",
		Data:       map[string]string{"groupId": group.ID.Hex()},
	}
	if _, err := m.notifications.Create(ctx, n); err != nil {
		// The group itself is consistent; losing the alert is not worth
		// tearing the creation down.
		m.log.Warn("new-group notification not created",
			zap.Error(err), zap.String("group_id", group.ID.Hex()))
	}

	return m.populate(ctx, group)
}

// compensate undoes the partial effects of a failed creation. Failures
// here are logged, not returned: the original error is what the caller
// needs to see.
func (m *Manager) compensate(ctx context.Context, courseID primitive.ObjectID, studentIDs []primitive.ObjectID) {
	if err := m.courses.Release(ctx, courseID); err != nil {
		m.log.Error("course release failed during rollback",
			zap.Error(err), zap.String("course_id", courseID.Hex()))
	}
	if len(studentIDs) > 0 {
		if _, err := m.students.DeleteMany(ctx, studentIDs); err != nil {
			m.log.Error("student cleanup failed during rollback",
				zap.Error(err), zap.Int("students", len(studentIDs)))
		}
	}
}

// DeleteGroup releases the course and removes the students before the
// group row itself, so a crash mid-sequence leaves the group row as the
// last-standing evidence of the incomplete deletion.
func (m *Manager) DeleteGroup(ctx context.Context, groupID primitive.ObjectID) error {
	group, err := m.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.CourseID.IsZero() {
		if err := m.courses.Release(ctx, group.CourseID); err != nil {
			return err
		}
	}
	if _, err := m.students.DeleteMany(ctx, group.StudentIDs); err != nil {
		return err
	}
	return m.groups.Delete(ctx, groupID)
}

// UpdateGroup patches mutable fields. Rebinding a group to a different
// course is not modeled; the handler rejects any courseId in the payload
// with Unsupported before reaching here.
func (m *Manager) UpdateGroup(ctx context.Context, groupID primitive.ObjectID, p groupstore.Patch) (GroupView, error) {
	group, err := m.groups.Update(ctx, groupID, p)
	if err != nil {
		return GroupView{}, err
	}
	return m.populate(ctx, group)
}

// ApproveGroup flips is_approved; used by the approval workflow.
func (m *Manager) ApproveGroup(ctx context.Context, groupID primitive.ObjectID) error {
	return m.groups.SetApproved(ctx, groupID, true)
}

// AddStudent appends a student to the roster, tagged with the group name.
func (m *Manager) AddStudent(ctx context.Context, groupID primitive.ObjectID, fullName string, moneyProvided int) (StudentView, error) {
	group, err := m.groups.GetByID(ctx, groupID)
	if err != nil {
		return StudentView{}, err
	}
	if moneyProvided < 0 {
		return StudentView{}, apperr.Invalid("moneyProvided must not be negative")
	}
	st, err := m.students.AppendOne(ctx, group.Name, fullName, moneyProvided)
	if err != nil {
		return StudentView{}, err
	}
	if err := m.groups.PushStudent(ctx, groupID, st.ID); err != nil {
		// Do not leave an orphan behind if the group vanished between
		// the read and the push.
		if rerr := m.students.Remove(ctx, st.ID); rerr != nil {
			m.log.Error("orphaned student cleanup failed",
				zap.Error(rerr), zap.String("student_id", st.ID.Hex()))
		}
		return StudentView{}, err
	}
	return StudentView{Student: st, PaymentStatus: st.PaymentStatus(group.CourseCost)}, nil
}

// UpdateStudent patches one roster member. The student must be on this
// group's roster; ownership is exclusive.
func (m *Manager) UpdateStudent(ctx context.Context, groupID, studentID primitive.ObjectID, fullName *string, moneyProvided *int) (StudentView, error) {
	group, err := m.groups.GetByID(ctx, groupID)
	if err != nil {
		return StudentView{}, err
	}
	if !rosterContains(group.StudentIDs, studentID) {
		return StudentView{}, apperr.NotFound("student is not in this group")
	}
	st, err := m.students.UpdateFields(ctx, studentID, fullName, moneyProvided)
	if err != nil {
		return StudentView{}, err
	}
	return StudentView{Student: st, PaymentStatus: st.PaymentStatus(group.CourseCost)}, nil
}

// RemoveStudent pulls the id from the roster and deletes the row, in that
// order, so the roster never dangles toward a deleted student.
func (m *Manager) RemoveStudent(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	if err := m.groups.PullStudent(ctx, groupID, studentID); err != nil {
		return err
	}
	return m.students.Remove(ctx, studentID)
}

// AttendanceRow carries one student's 8-slot arrays for the attendance
// screen.
type AttendanceRow struct {
	StudentID  primitive.ObjectID `json:"studentId"`
	FullName   string             `json:"fullName"`
	Attendance []bool             `json:"attendance"`
	Activities []bool             `json:"activities"`
}

// GetAttendance returns the arrays for every student in the group, in
// roster order.
func (m *Manager) GetAttendance(ctx context.Context, groupID primitive.ObjectID) ([]AttendanceRow, error) {
	group, err := m.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	students, err := m.students.FindByIDs(ctx, group.StudentIDs)
	if err != nil {
		return nil, err
	}
	rows := make([]AttendanceRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, AttendanceRow{
			StudentID:  st.ID,
			FullName:   st.FullName,
			Attendance: st.Attendance,
			Activities: st.Activities,
		})
	}
	return rows, nil
}

// SaveAttendance overwrites the arrays for the given roster members.
// Every row must belong to the group and carry full-length arrays.
func (m *Manager) SaveAttendance(ctx context.Context, groupID primitive.ObjectID, rows []AttendanceRow) error {
	group, err := m.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if !rosterContains(group.StudentIDs, row.StudentID) {
			return apperr.NotFound("student is not in this group")
		}
	}
	for _, row := range rows {
		if _, err := m.students.UpdateAttendance(ctx, row.StudentID, row.Attendance, row.Activities); err != nil {
			return err
		}
	}
	return nil
}

// ListForTeacher returns the teacher's groups, populated, newest first.
func (m *Manager) ListForTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]GroupView, error) {
	groups, err := m.groups.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return m.populateAll(ctx, groups)
}

// ListAll returns every group, populated, newest first.
func (m *Manager) ListAll(ctx context.Context) ([]GroupView, error) {
	groups, err := m.groups.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return m.populateAll(ctx, groups)
}

// GetGroup returns one populated group.
func (m *Manager) GetGroup(ctx context.Context, groupID primitive.ObjectID) (GroupView, error) {
	group, err := m.groups.GetByID(ctx, groupID)
	if err != nil {
		return GroupView{}, err
	}
	return m.populate(ctx, group)
}

func (m *Manager) populateAll(ctx context.Context, groups []models.Group) ([]GroupView, error) {
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		v, err := m.populate(ctx, g)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (m *Manager) populate(ctx context.Context, g models.Group) (GroupView, error) {
	students, err := m.students.FindByIDs(ctx, g.StudentIDs)
	if err != nil {
		return GroupView{}, err
	}
	view := GroupView{Group: g, Students: make([]StudentView, 0, len(students))}
	for _, st := range students {
		view.Students = append(view.Students, StudentView{
			Student:       st,
			PaymentStatus: st.PaymentStatus(g.CourseCost),
		})
	}
	if !g.CourseID.IsZero() {
		course, err := m.courses.GetByID(ctx, g.CourseID)
		if err == nil {
			view.Course = &course
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return GroupView{}, err
		}
	}
	return view, nil
}

func rosterContains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
