package converter

import (
	"testing"
	"time"

	"autodominio-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "08:00", TimeOfDay(datatypes.NewTime(8, 0, 0, 0)))
	assert.Equal(t, "23:59", TimeOfDay(datatypes.NewTime(23, 59, 59, 0)))
}

func TestApprovalStatsTotals(t *testing.T) {
	stats := ApprovalStatsToResponse(map[entity.ApprovalStatus]int64{
		entity.ApprovalPending:  2,
		entity.ApprovalApproved: 5,
	})
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(0), stats.Rejected)
}

func TestTimeOffToResponseFormatsDate(t *testing.T) {
	entry := &entity.TimeOff{Date: datatypes.Date(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))}
	assert.Equal(t, "2025-03-04", TimeOffToResponse(entry).Date)
}

func TestUserToResponseIncludesProfile(t *testing.T) {
	user := &entity.User{
		FullName:          "Caio",
		Role:              entity.RoleInstructor,
		InstructorProfile: &entity.InstructorProfile{City: "Natal", ApprovalStatus: entity.ApprovalPending},
	}
	resp := UserToResponse(user)
	assert.Equal(t, "INSTRUCTOR", resp.Role)
	if assert.NotNil(t, resp.InstructorProfile) {
		assert.Equal(t, "Natal", resp.InstructorProfile.City)
	}
}
