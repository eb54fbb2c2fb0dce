package models

// Role identifies the broad account kind of a user.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// Capability is an independent admin permission tag. Capabilities do not
// imply each other and are only consulted when the user's role is ADMIN.
type Capability string

const (
	CapabilityStudentAccess           Capability = "STUDENT_ACCESS"
	CapabilityTeacherAccess           Capability = "TEACHER_ACCESS"
	CapabilityBatchAccess             Capability = "BATCH_ACCESS"
	CapabilitySubjectAccess           Capability = "SUBJECT_ACCESS"
	CapabilityAssignmentMonitorAccess Capability = "ASSIGNMENT_MONITOR_ACCESS"
	CapabilityRoutineAccess           Capability = "ROUTINE_ACCESS"
	CapabilityResultAccess            Capability = "RESULT_ACCESS"
	CapabilityNoticeAccess            Capability = "NOTICE_ACCESS"
)

// Department is the academic department a batch or subject belongs to.
type Department string

const (
	DepartmentCSE Department = "CSE"
	DepartmentEEE Department = "EEE"
	DepartmentME  Department = "ME"
	DepartmentCE  Department = "CE"
)

// Departments lists every known department.
func Departments() []Department {
	return []Department{DepartmentCSE, DepartmentEEE, DepartmentME, DepartmentCE}
}

// Semester numbers the stages a batch progresses through.
type Semester int

const (
	SemesterFirst   Semester = 1
	SemesterSecond  Semester = 2
	SemesterThird   Semester = 3
	SemesterFourth  Semester = 4
	SemesterFifth   Semester = 5
	SemesterSixth   Semester = 6
	SemesterSeventh Semester = 7
	SemesterEighth  Semester = 8
)

// IsValid reports whether the semester is within the curriculum range.
func (s Semester) IsValid() bool {
	return s >= SemesterFirst && s <= SemesterEighth
}

// IsTerminal reports whether the semester is the last one of the curriculum.
func (s Semester) IsTerminal() bool {
	return s == SemesterEighth
}

// Next returns the following semester. ok is false when the semester is
// terminal or out of range.
func (s Semester) Next() (Semester, bool) {
	if !s.IsValid() || s.IsTerminal() {
		return s, false
	}
	return s + 1, true
}

// SubjectType classifies how a subject is taught.
type SubjectType string

const (
	SubjectTypeTheory  SubjectType = "THEORY"
	SubjectTypeLab     SubjectType = "LAB"
	SubjectTypeProject SubjectType = "PROJECT"
)

// Day names a weekday in the class routine.
type Day string

const (
	DaySunday    Day = "SUNDAY"
	DayMonday    Day = "MONDAY"
	DayTuesday   Day = "TUESDAY"
	DayWednesday Day = "WEDNESDAY"
	DayThursday  Day = "THURSDAY"
	DayFriday    Day = "FRIDAY"
	DaySaturday  Day = "SATURDAY"
)

// Shift names the routine slot within a day.
type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftDay     Shift = "DAY"
	ShiftEvening Shift = "EVENING"
)

// Gender of a user profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// StudentStatus tracks whether a student is still part of their batch.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusDropped   StudentStatus = "DROPPED"
	StudentStatusGraduated StudentStatus = "GRADUATED"
)
