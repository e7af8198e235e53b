package dto

import (
	"time"

	"github.com/campuslink/portal-api/internal/models"
)

// SignupRequest carries a new account registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`

	// Student fields
	RollNumber string `json:"roll_number" validate:"omitempty,max=64"`
	Class      string `json:"class" validate:"omitempty,max=64"`

	// Teacher fields
	Department  string `json:"department" validate:"omitempty,max=128"`
	Designation string `json:"designation" validate:"omitempty,max=128"`
}

// LoginRequest carries login credentials together with the requested role.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      ProfileResponse `json:"user"`
}

// StudentDetails is the student variant of a profile.
type StudentDetails struct {
	RollNumber string `json:"roll_number"`
	Class      string `json:"class"`
}

// TeacherDetails is the teacher variant of a profile.
type TeacherDetails struct {
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	Qualification string `json:"qualification"`
	Experience    string `json:"experience"`
}

// ProfileResponse is a role-tagged view of an account: exactly one of
// Student or Teacher is populated, matching the role field.
type ProfileResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Student   *StudentDetails `json:"student,omitempty"`
	Teacher   *TeacherDetails `json:"teacher,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProfileUpdateRequest carries editable profile fields. Qualification and
// experience are only honoured for teacher accounts.
type ProfileUpdateRequest struct {
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	Address       *string `json:"address" validate:"omitempty,max=512"`
	Qualification *string `json:"qualification" validate:"omitempty,max=255"`
	Experience    *string `json:"experience" validate:"omitempty,max=255"`
}

// NewProfileResponse maps a stored user onto its role-tagged profile view.
func NewProfileResponse(user models.User) ProfileResponse {
	response := ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Phone:     user.Phone,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}

	switch user.Role {
	case models.RoleStudent:
		response.Student = &StudentDetails{
			RollNumber: user.RollNumber,
			Class:      user.Class,
		}
	case models.RoleTeacher:
		response.Teacher = &TeacherDetails{
			Department:    user.Department,
			Designation:   user.Designation,
			Qualification: user.Qualification,
			Experience:    user.Experience,
		}
	}

	return response
}
