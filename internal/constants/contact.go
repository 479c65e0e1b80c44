package constants

// Response messages returned in the JSON body.
const (
	SubmissionSucceededMessage = "Form submitted successfully"
	MissingBodyMessage         = "Missing request body"
	MissingFieldsMessage       = "Missing required fields: name, email, message"
	InternalErrorMessage       = "Internal server error"
)

// Notification subjects.
const (
	AdminNotificationSubject = "New Contact Form Submission"
	ConfirmationSubject      = "Thank You for Contacting Us"
)

// SubmissionTimestampFormat is ISO-8601 in UTC with millisecond precision.
const SubmissionTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Submission table attribute names. The table is keyed by email (HASH) and timestamp (RANGE).
const (
	SubmissionPartitionKey = "email"
	SubmissionSortKey      = "timestamp"
)

// SubmissionPutAttempts bounds the writes tried when a submission key is already taken.
const SubmissionPutAttempts = 3

// Submission outcomes recorded by the metrics recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
	OutcomePreflight = "preflight"
)
