package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Identity fields
	FieldUserID     = "user_id"
	FieldExerciseID = "exercise_id"
	FieldRecordID   = "record_id"
	FieldSessionID  = "session_id"
	FieldAttempt    = "attempt"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"
	FieldReps     = "reps"
	FieldAssigned = "assigned"
	FieldElapsed  = "elapsed_s"

	// Call fields
	FieldUseCase    = "use_case"
	FieldDurationMs = "duration_ms"
	FieldBaseURL    = "base_url"
	FieldPath       = "path"
	FieldStatus     = "status"
)
