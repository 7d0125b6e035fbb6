// Package validate wraps go-playground/validator with English messages and
// the custom tags used by publication variants
package validate

import (
	"reflect"
	"strings"
	"sync"
	"time"

	perr "newsfeed/internal/platform/errors"
	"newsfeed/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Custom tags
const (
	TagDate = "feeddate" // YYYY/MM/DD
	TagTime = "feedtime" // HH:MM
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// Svc holds a singleton validator and translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *Svc
)

// Init initializes the singleton validator with english translations
func Init() *Svc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer feed tag names in messages so errors name the input field
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("feed")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")

		registerLayout(v, trans, TagDate, "2006/01/02", "{0} must be a YYYY/MM/DD date")
		registerLayout(v, trans, TagTime, "15:04", "{0} must be an HH:MM time")

		vSvc = &Svc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *Svc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// Struct validates v and maps the first failure to a project error
// Date layout failures carry ErrorCodeInvalidDate, everything else ErrorCodeValidation
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Wrap(inv, perr.ErrorCodeInvalidArgument, "validation error")
	}
	fe, msg := FieldAndMessage(err)
	code := perr.ErrorCodeValidation
	if fe != nil && fe.Tag() == TagDate {
		code = perr.ErrorCodeInvalidDate
	}
	out := perr.Newf(code, "%s", msg)
	if fe != nil {
		out = perr.WithField(out, fe.Field())
	}
	return out
}

// FieldAndMessage returns the first field error and its translated message
func FieldAndMessage(err error) (FieldError, string) {
	if err == nil {
		return nil, ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe, fe.Translate(Get().Translator)
		}
	}
	return nil, err.Error()
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// registerLayout adds a string tag that must parse with the given time layout
func registerLayout(v *validator.Validate, trans ut.Translator, tag, layout, text string) {
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true // required decides
		}
		_, err := time.Parse(layout, s)
		return err == nil
	})
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}
