package domain

import (
	"errors"
	"fmt"
	"time"
)

// FieldType enumerates custom field value kinds.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldEnum   FieldType = "enum"
)

func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldNumber, FieldDate, FieldEnum:
		return true
	}
	return false
}

var ErrFieldTypeMismatch = errors.New("field value does not match definition type")

// FieldValue is a closed union over custom field value kinds. Exactly one
// variant is populated; construction goes through the typed constructors so
// a value can never carry the wrong column.
type FieldValue struct {
	kind   FieldType
	text   string
	number float64
	date   time.Time
	option string
}

func TextValue(s string) FieldValue      { return FieldValue{kind: FieldText, text: s} }
func NumberValue(n float64) FieldValue   { return FieldValue{kind: FieldNumber, number: n} }
func DateValue(d time.Time) FieldValue   { return FieldValue{kind: FieldDate, date: d} }
func EnumValue(optionID string) FieldValue {
	return FieldValue{kind: FieldEnum, option: optionID}
}

func (v FieldValue) Kind() FieldType { return v.kind }

func (v FieldValue) Text() (string, bool)    { return v.text, v.kind == FieldText }
func (v FieldValue) Number() (float64, bool) { return v.number, v.kind == FieldNumber }
func (v FieldValue) Date() (time.Time, bool) { return v.date, v.kind == FieldDate }

// EnumOptionID returns the referenced option for enum values.
func (v FieldValue) EnumOptionID() (string, bool) { return v.option, v.kind == FieldEnum }

// CheckAgainst verifies the value variant matches a definition's declared type.
func (v FieldValue) CheckAgainst(def CustomFieldDefinition) error {
	if v.kind != def.FieldType {
		return fmt.Errorf("%w: field %q declares %s, value holds %s",
			ErrFieldTypeMismatch, def.Name, def.FieldType, v.kind)
	}
	return nil
}

// MarshalJSON renders the union as a small tagged object so graph dumps stay
// canonical across runs.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case FieldText:
		return []byte(fmt.Sprintf(`{"kind":"text","text":%q}`, v.text)), nil
	case FieldNumber:
		return []byte(fmt.Sprintf(`{"kind":"number","number":%g}`, v.number)), nil
	case FieldDate:
		return []byte(fmt.Sprintf(`{"kind":"date","date":%q}`, v.date.UTC().Format("2006-01-02"))), nil
	case FieldEnum:
		return []byte(fmt.Sprintf(`{"kind":"enum","enum_option_id":%q}`, v.option)), nil
	}
	return nil, fmt.Errorf("field value has no kind")
}
