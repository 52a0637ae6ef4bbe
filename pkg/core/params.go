package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Job parameters are a tagged union: one shape per job type, validated at
// job-creation time so handlers never parse ad hoc.

// BatesParams selects the shared sequence a Bates job draws numbers from.
type BatesParams struct {
	BatesSetID string `json:"batesSetId"`
}

// StampParams configures a confidentiality stamp job. Zero values take
// the documented defaults when decoded.
type StampParams struct {
	StampType string    `json:"stampType,omitempty"`
	Placement Placement `json:"placement,omitempty"`
	FontSize  int       `json:"fontSize,omitempty"`
}

// WashParams carries the descriptive policy label recorded on the report.
// The policy does not alter which detectors run.
type WashParams struct {
	Policy string `json:"policy,omitempty"`
}

// OcrParams is empty; text extraction takes no options.
type OcrParams struct{}

const (
	DefaultStampType     = "CONFIDENTIAL"
	DefaultStampFontSize = 24
	DefaultWashPolicy    = "standard"
)

func decodeStrict(raw []byte, v any) error {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ValidateParams checks that raw is a well-formed parameter object for the
// given job type. Called at job-creation time by EnqueueJob.
func ValidateParams(t JobType, raw []byte) error {
	switch t {
	case JobTypeBates:
		var p BatesParams
		if err := decodeStrict(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		if p.BatesSetID == "" {
			return fmt.Errorf("%w: batesSetId is required", ErrInvalidParams)
		}
	case JobTypeStamp:
		var p StampParams
		if err := decodeStrict(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		if p.Placement != "" && !p.Placement.Valid() {
			return fmt.Errorf("%w: unknown placement %q", ErrInvalidParams, p.Placement)
		}
		if p.FontSize < 0 {
			return fmt.Errorf("%w: fontSize must be positive", ErrInvalidParams)
		}
	case JobTypeWash:
		var p WashParams
		if err := decodeStrict(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
	case JobTypeOcr:
		var p OcrParams
		if err := decodeStrict(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJobType, t)
	}
	return nil
}

// DecodeBatesParams decodes and validates Bates job parameters.
func DecodeBatesParams(raw []byte) (BatesParams, error) {
	var p BatesParams
	if err := decodeStrict(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if p.BatesSetID == "" {
		return p, fmt.Errorf("%w: batesSetId is required", ErrInvalidParams)
	}
	return p, nil
}

// DecodeStampParams decodes stamp parameters and fills in defaults:
// stamp type CONFIDENTIAL, center placement, 24pt font.
func DecodeStampParams(raw []byte) (StampParams, error) {
	var p StampParams
	if err := decodeStrict(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if p.StampType == "" {
		p.StampType = DefaultStampType
	}
	if p.Placement == "" {
		p.Placement = PlacementCenter
	}
	if !p.Placement.Valid() {
		return p, fmt.Errorf("%w: unknown placement %q", ErrInvalidParams, p.Placement)
	}
	if p.FontSize == 0 {
		p.FontSize = DefaultStampFontSize
	}
	if p.FontSize < 0 {
		return p, fmt.Errorf("%w: fontSize must be positive", ErrInvalidParams)
	}
	return p, nil
}

// DecodeWashParams decodes wash parameters, defaulting the policy label.
func DecodeWashParams(raw []byte) (WashParams, error) {
	var p WashParams
	if err := decodeStrict(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if p.Policy == "" {
		p.Policy = DefaultWashPolicy
	}
	return p, nil
}
