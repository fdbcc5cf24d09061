package predictions

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("predictive analytics service unavailable")
	ErrRateLimited        = errors.New("too many prediction requests")
)

// Campos del payload, en el orden en que se validan.
const (
	FieldAnimalType     = "animal_type"
	FieldSexUponOutcome = "sex_upon_outcome"
	FieldPrimaryBreed   = "primary_breed"
	FieldAgeWeeks       = "age_weeks"
	FieldOutcomeMonth   = "outcome_month"
)

// Request es el payload que espera el endpoint de scoring. No se persiste.
type Request struct {
	AnimalType     string  `json:"animal_type"`
	SexUponOutcome string  `json:"sex_upon_outcome"`
	PrimaryBreed   string  `json:"primary_breed"`
	AgeWeeks       float64 `json:"age_weeks"`
	OutcomeMonth   int     `json:"outcome_month"`
}

// Result envuelve la respuesta del upstream. Raw se reenvía tal cual al cliente.
type Result struct {
	AdoptionProbability *float64
	Raw                 json.RawMessage
}

// ValidationError nombra el primer campo que falló.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// UnavailableError representa timeout / error de conexión / status no-2xx del upstream.
type UnavailableError struct {
	Detail string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Detail == "" {
		return ErrServiceUnavailable.Error()
	}
	return ErrServiceUnavailable.Error() + ": " + e.Detail
}

func (e *UnavailableError) Is(target error) bool { return target == ErrServiceUnavailable }

func (e *UnavailableError) Unwrap() error { return e.Err }

var fieldOrder = []string{
	FieldAnimalType,
	FieldSexUponOutcome,
	FieldPrimaryBreed,
	FieldAgeWeeks,
	FieldOutcomeMonth,
}

// Validate corre antes de cualquier llamada de red y devuelve el primer campo inválido.
func (r Request) Validate() error {
	for _, f := range fieldOrder {
		if err := r.validateField(f); err != nil {
			return err
		}
	}
	return nil
}

func (r Request) validateField(field string) error {
	switch field {
	case FieldAnimalType:
		if strings.TrimSpace(r.AnimalType) == "" {
			return &ValidationError{Field: field, Reason: "is required"}
		}
	case FieldSexUponOutcome:
		if strings.TrimSpace(r.SexUponOutcome) == "" {
			return &ValidationError{Field: field, Reason: "is required"}
		}
	case FieldPrimaryBreed:
		if strings.TrimSpace(r.PrimaryBreed) == "" {
			return &ValidationError{Field: field, Reason: "is required"}
		}
	case FieldAgeWeeks:
		if math.IsNaN(r.AgeWeeks) || math.IsInf(r.AgeWeeks, 0) || r.AgeWeeks < 0 {
			return &ValidationError{Field: field, Reason: "must be a finite number >= 0"}
		}
	case FieldOutcomeMonth:
		if r.OutcomeMonth < 1 || r.OutcomeMonth > 12 {
			return &ValidationError{Field: field, Reason: "must be an integer between 1 and 12"}
		}
	}
	return nil
}

// DecodeRequest parsea y valida un body JSON campo por campo, de modo que un tipo
// inválido se reporta como ValidationError sobre ese campo y respetando el orden de validación.
func DecodeRequest(body []byte) (Request, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Request{}, &ValidationError{Field: "body", Reason: "must be a JSON object"}
	}

	req := Request{AgeWeeks: math.NaN()}
	typeErrs := map[string]*ValidationError{}

	present := func(name string) (json.RawMessage, bool) {
		v, ok := raw[name]
		if !ok || string(v) == "null" {
			return nil, false
		}
		return v, true
	}

	for name, dst := range map[string]*string{
		FieldAnimalType:     &req.AnimalType,
		FieldSexUponOutcome: &req.SexUponOutcome,
		FieldPrimaryBreed:   &req.PrimaryBreed,
	} {
		if v, ok := present(name); ok {
			if err := json.Unmarshal(v, dst); err != nil {
				typeErrs[name] = &ValidationError{Field: name, Reason: "must be a string"}
			}
		}
	}

	if v, ok := present(FieldAgeWeeks); ok {
		if err := json.Unmarshal(v, &req.AgeWeeks); err != nil {
			typeErrs[FieldAgeWeeks] = &ValidationError{Field: FieldAgeWeeks, Reason: "must be a number"}
		}
	}

	if v, ok := present(FieldOutcomeMonth); ok {
		var m float64
		switch err := json.Unmarshal(v, &m); {
		case err != nil, m != math.Trunc(m):
			typeErrs[FieldOutcomeMonth] = &ValidationError{Field: FieldOutcomeMonth, Reason: "must be an integer"}
		case m >= 1 && m <= 12:
			req.OutcomeMonth = int(m)
		}
	}

	for _, f := range fieldOrder {
		if e, ok := typeErrs[f]; ok {
			return Request{}, e
		}
		if err := req.validateField(f); err != nil {
			return Request{}, err
		}
	}
	return req, nil
}
