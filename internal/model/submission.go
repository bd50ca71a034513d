package model

import "time"

// OptionOther is the selector value that unlocks a matching free-text field.
const OptionOther = "Other"

// SubmissionInput is the questionnaire payload accepted from the wizard.
//
// Field order matters: validation errors are reported in declaration order.
type SubmissionInput struct {
	ReferenceNumber string `json:"referenceNumber,omitempty" bson:"-" binding:"omitempty,refnum"`

	// Section 1: Personal Details
	FullName       string `json:"fullName" bson:"fullName" binding:"required"`
	DateOfBirth    string `json:"dateOfBirth" bson:"dateOfBirth" binding:"required"`
	Gender         string `json:"gender" bson:"gender" binding:"required,option=genders"`
	Email          string `json:"email" bson:"email" binding:"required,email"`
	PhoneNumber    string `json:"phoneNumber" bson:"phoneNumber" binding:"required,min=5"`
	Nationality    string `json:"nationality" bson:"nationality" binding:"required"`
	CurrentCountry string `json:"currentCountry" bson:"currentCountry" binding:"required"`
	PassportNumber string `json:"passportNumber" bson:"passportNumber" binding:"required,min=3"`

	// Section 2: Educational Background
	EducationLevel      string `json:"educationLevel" bson:"educationLevel" binding:"required"`
	EducationLevelOther string `json:"educationLevelOther,omitempty" bson:"educationLevelOther,omitempty"`
	InstitutionName     string `json:"institutionName" bson:"institutionName" binding:"required"`
	FieldOfStudy        string `json:"fieldOfStudy" bson:"fieldOfStudy" binding:"required"`
	GraduationYear      string `json:"graduationYear" bson:"graduationYear" binding:"required,len=4"`

	// Section 3: Study Abroad Journey. Presence is governed by the section rule.
	InstitutionsPreference string   `json:"institutionsPreference,omitempty" bson:"institutionsPreference,omitempty"`
	ProgramType            string   `json:"programType,omitempty" bson:"programType,omitempty"`
	ProgramTypeOther       string   `json:"programTypeOther,omitempty" bson:"programTypeOther,omitempty"`
	FieldOfStudyAbroad     string   `json:"fieldOfStudyAbroad,omitempty" bson:"fieldOfStudyAbroad,omitempty"`
	StudyReasons           []string `json:"studyReasons,omitempty" bson:"studyReasons,omitempty" binding:"omitempty,unique,dive,option=studyReasons"`
	StudyReasonsOther      string   `json:"studyReasonsOther,omitempty" bson:"studyReasonsOther,omitempty"`
	FundingMethod          string   `json:"fundingMethod,omitempty" bson:"fundingMethod,omitempty"`
	FundingMethodOther     string   `json:"fundingMethodOther,omitempty" bson:"fundingMethodOther,omitempty"`

	// Section 4: Challenges & Insights
	Challenges      []string `json:"challenges" bson:"challenges" binding:"required,min=1,unique,dive,option=challenges"`
	ChallengesOther string   `json:"challengesOther,omitempty" bson:"challengesOther,omitempty"`

	// Section 5: Additional Information
	OpenToContact      bool   `json:"openToContact" bson:"openToContact"`
	ContactMethod      string `json:"contactMethod,omitempty" bson:"contactMethod,omitempty" binding:"omitempty,option=contactMethods"`
	ContactMethodOther string `json:"contactMethodOther,omitempty" bson:"contactMethodOther,omitempty"`

	// Emergency Contact Details
	EmergencyName         string `json:"emergencyName" bson:"emergencyName" binding:"required"`
	EmergencyContact      string `json:"emergencyContact" bson:"emergencyContact" binding:"required"`
	EmergencyAddress      string `json:"emergencyAddress" bson:"emergencyAddress" binding:"required"`
	EmergencyEmail        string `json:"emergencyEmail" bson:"emergencyEmail" binding:"required,email"`
	EmergencyCountry      string `json:"emergencyCountry" bson:"emergencyCountry" binding:"required"`
	EmergencyRelationship string `json:"emergencyRelationship" bson:"emergencyRelationship" binding:"required"`
	EmergencyProvince     string `json:"emergencyProvince" bson:"emergencyProvince" binding:"required"`
	EmergencyCity         string `json:"emergencyCity" bson:"emergencyCity" binding:"required"`

	// Language Test Scores
	IELTSScore string `json:"ieltsScore,omitempty" bson:"ieltsScore,omitempty" binding:"omitempty,max=20"`
	SATScore   string `json:"satScore,omitempty" bson:"satScore,omitempty" binding:"omitempty,max=20"`
	PTEScore   string `json:"pteScore,omitempty" bson:"pteScore,omitempty" binding:"omitempty,max=20"`
	GREScore   string `json:"greScore,omitempty" bson:"greScore,omitempty" binding:"omitempty,max=20"`
}

// Submission is a persisted questionnaire. It is never updated after creation.
type Submission struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	SubmissionInput
	CreatedAt time.Time `json:"createdAt"`
}

// CreateSubmissionResponse is the only thing echoed back on a successful submit.
type CreateSubmissionResponse struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
}

// ExportQuery selects the admin export format.
type ExportQuery struct {
	Format string `json:"format" form:"format" binding:"omitempty,oneof=csv xlsx"`
}
