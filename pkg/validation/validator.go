package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// StreamConfigRequest mirrors the three configuration options a caller may
// set on an image stream (spec §6): chunk size, chunks per segment, and
// compression method. It exists so the numeric bounds can be expressed as
// struct tags instead of hand-written comparisons.
type StreamConfigRequest struct {
	ChunkSize        int    `json:"chunkSize" validate:"required,min=1,max=1073741824"`
	ChunksPerSegment int    `json:"chunksPerSegment" validate:"required,min=1,max=1000000"`
	Compression      string `json:"compression" validate:"required,oneof=stored zlib snappy"`
}

// ValidateStreamConfigRequest validates a stream configuration request.
func ValidateStreamConfigRequest(req *StreamConfigRequest) error {
	if req == nil {
		return errors.New("stream config request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
