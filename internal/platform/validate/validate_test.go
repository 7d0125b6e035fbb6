package validate

import (
	"testing"

	perr "newsfeed/internal/platform/errors"
)

type sample struct {
	Name  string `validate:"required" feed:"Text"`
	Date  string `validate:"required,feeddate"`
	Time  string `validate:"omitempty,feedtime"`
	Score int    `validate:"min=1,max=10"`
}

func TestStruct_OK(t *testing.T) {
	if err := Struct(sample{Name: "x", Date: "2030/01/31", Time: "09:05", Score: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_Failures(t *testing.T) {
	cases := []struct {
		name  string
		in    sample
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"required uses feed tag", sample{Date: "2030/01/01", Score: 1}, perr.ErrorCodeValidation, "Text", "Text is a required field"},
		{"bad date", sample{Name: "x", Date: "2030/13/01", Score: 1}, perr.ErrorCodeInvalidDate, "Date", "Date must be a YYYY/MM/DD date"},
		{"bad time", sample{Name: "x", Date: "2030/01/01", Time: "25:00", Score: 1}, perr.ErrorCodeValidation, "Time", "Time must be an HH:MM time"},
		{"min", sample{Name: "x", Date: "2030/01/01", Score: 0}, perr.ErrorCodeValidation, "Score", "Score must be at least 1"},
		{"max", sample{Name: "x", Date: "2030/01/01", Score: 11}, perr.ErrorCodeValidation, "Score", "Score must be at most 10"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Struct(c.in)
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("want *perr.Error, got %T %v", err, err)
			}
			if e.Code() != c.code || e.Field() != c.field || e.Error() != c.msg {
				t.Fatalf("got code=%v field=%q msg=%q", e.Code(), e.Field(), e.Error())
			}
		})
	}
}

func TestStruct_NonStruct(t *testing.T) {
	if err := Struct(42); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("non-struct err = %v", err)
	}
}

func TestFieldAndMessage_Plain(t *testing.T) {
	fe, msg := FieldAndMessage(perr.New(perr.ErrorCodeDB, "boom"))
	if fe != nil || msg != "boom" {
		t.Fatalf("got %v %q", fe, msg)
	}
	if fe, msg := FieldAndMessage(nil); fe != nil || msg != "" {
		t.Fatal("nil should yield zero values")
	}
}

func TestGet_Singleton(t *testing.T) {
	if Get() != Init() || Get().Translator == nil {
		t.Fatal("Get and Init should return the same service")
	}
}
