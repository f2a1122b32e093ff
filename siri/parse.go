package siri

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrMalformed is returned when a body is not a JSON document
var ErrMalformed = errors.New("siri: response is not valid JSON")

const annotatedStopPointsPath = "StopPointsDelivery.AnnotatedStopPointRef"

// ParseAnnotatedStopPoints extracts the annotated stop points from a
// discovery body, in document order. A valid document without the expected
// path, or with a non-array value there, yields no stop points and no error.
func ParseAnnotatedStopPoints(body []byte) ([]AnnotatedStopPointRef, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}
	refs := gjson.GetBytes(body, annotatedStopPointsPath)
	if !refs.IsArray() {
		return []AnnotatedStopPointRef{}, nil
	}

	elems := refs.Array()
	out := make([]AnnotatedStopPointRef, 0, len(elems))
	for _, el := range elems {
		if !el.IsObject() {
			out = append(out, AnnotatedStopPointRef{})
			continue
		}
		ref := AnnotatedStopPointRef{
			StopPointRef: optionalString(el.Get("StopPointRef")),
			StopName:     optionalString(el.Get("StopName")),
		}
		if code := optionalString(el.Get("Extension.StopCode")); code != nil {
			ref.Extension = &Extension{StopCode: code}
		}
		out = append(out, ref)
	}
	return out, nil
}

// optionalString reads a scalar as a string; absent, null and composite
// values are nil.
func optionalString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		s := r.String()
		return &s
	default:
		return nil
	}
}
