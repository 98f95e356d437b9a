package apperrors

import "net/http"

// Error is a client-facing failure with a stable code token and HTTP status.
// Handlers map these structurally; anything else becomes a 500.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Status: e.Status, Message: message}
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	ErrMissingFields      = New("MISSING_FIELDS", http.StatusBadRequest, "Required fields are missing")
	ErrInvalidEmail       = New("INVALID_EMAIL", http.StatusBadRequest, "Email address is not valid")
	ErrInvalidPassword    = New("INVALID_PASSWORD", http.StatusBadRequest, "Password does not meet the requirements")
	ErrEmailAlreadyExists = New("EMAIL_ALREADY_EXISTS", http.StatusConflict, "An account with this email already exists")
	ErrInvalidOTPFormat   = New("INVALID_OTP_FORMAT", http.StatusBadRequest, "OTP must be exactly 6 digits")
	ErrInvalidOTP         = New("INVALID_OTP", http.StatusBadRequest, "The OTP is incorrect")
	ErrOTPExpired         = New("OTP_EXPIRED", http.StatusBadRequest, "The OTP has expired, request a new one")
	ErrOTPNotFound        = New("OTP_NOT_FOUND", http.StatusBadRequest, "No pending OTP for this account")
	ErrDoctorNotFound     = New("DOCTOR_NOT_FOUND", http.StatusNotFound, "Doctor not found")
	ErrPatientNotFound    = New("PATIENT_NOT_FOUND", http.StatusNotFound, "Patient not found")
	ErrInvalidStep        = New("INVALID_ONBOARDING_STEP", http.StatusBadRequest, "This onboarding step cannot be completed right now")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "Invalid email or password")
	ErrDoctorAlreadySaved = New("DOCTOR_ALREADY_SAVED", http.StatusBadRequest, "Doctor is already saved")
	ErrInvalidPatientID   = New("INVALID_PATIENT_ID_FORMAT", http.StatusBadRequest, "Patient id is not a valid UUID")
	ErrInvalidDoctorID    = New("INVALID_DOCTOR_ID_FORMAT", http.StatusBadRequest, "Doctor id is not a valid UUID")
	ErrInternal           = New("INTERNAL_SERVER_ERROR", http.StatusInternalServerError, "Something went wrong")
	ErrInvalidUserType    = New("INVALID_USER_TYPE", http.StatusBadRequest, "User type must be doctor or patient")

	// Field-level validation failures.
	ErrInvalidName           = New("INVALID_NAME", http.StatusBadRequest, "Name must be at least 2 characters")
	ErrInvalidAge            = New("INVALID_AGE", http.StatusBadRequest, "Age is out of range")
	ErrInvalidGender         = New("INVALID_GENDER", http.StatusBadRequest, "Gender must be MALE, FEMALE, OTHER or PREFER_NOT_TO_SAY")
	ErrInvalidLanguages      = New("INVALID_LANGUAGES", http.StatusBadRequest, "Languages must be a non-empty list")
	ErrInvalidContactNumber  = New("INVALID_CONTACT_NUMBER", http.StatusBadRequest, "Contact number is not a valid phone number")
	ErrInvalidWhatsappNumber = New("INVALID_WHATSAPP_NUMBER", http.StatusBadRequest, "WhatsApp number is not a valid phone number")
	ErrInvalidPhoneNumber    = New("INVALID_PHONE_NUMBER", http.StatusBadRequest, "Phone number is not valid")
	ErrInvalidSpecialty      = New("INVALID_SPECIALTY", http.StatusBadRequest, "Specialty must be at least 2 characters")
	ErrInvalidQualification  = New("INVALID_QUALIFICATION", http.StatusBadRequest, "Qualification must be at least 2 characters")
	ErrInvalidAddress        = New("INVALID_ADDRESS", http.StatusBadRequest, "Address must be at least 5 characters")
	ErrInvalidCity           = New("INVALID_CITY", http.StatusBadRequest, "City must be at least 2 characters")
	ErrInvalidLocality       = New("INVALID_LOCALITY", http.StatusBadRequest, "Locality must be at least 2 characters")
	ErrInvalidExperience     = New("INVALID_YEARS_OF_EXPERIENCE", http.StatusBadRequest, "Years of experience must be between 0 and 50")
	ErrInvalidAvailableDays  = New("INVALID_AVAILABLE_DAYS", http.StatusBadRequest, "Available days must be a non-empty list of weekdays")
	ErrInvalidTiming         = New("INVALID_AVAILABLE_TIMING", http.StatusBadRequest, "Available timing must be in HH:MM-HH:MM format")
)
