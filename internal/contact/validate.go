package contact

import (
	"errors"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/constants"
	appErrors "github.com/runvoy/contactform/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var errNotAnObject = errors.New("body is not a JSON object")

// Validate extracts name, email and message from a decoded body.
// Missing, empty or non-string fields and Raw bodies yield a 400 AppError.
func Validate(body DecodedBody) (*api.SubmissionRequest, error) {
	structured, ok := body.(Structured)
	if !ok {
		return nil, appErrors.ErrBadRequest(constants.MissingFieldsMessage, errNotAnObject)
	}

	req := &api.SubmissionRequest{
		Name:    structured.stringField("name"),
		Email:   structured.stringField("email"),
		Message: structured.stringField("message"),
	}

	if err := validate.Struct(req); err != nil {
		return nil, appErrors.ErrBadRequest(constants.MissingFieldsMessage, err)
	}

	return req, nil
}
