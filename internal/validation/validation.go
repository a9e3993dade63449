// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or CNPJ check digits) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"strings"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/lib/fiscal"
	"github.com/go-playground/validator/v10"
)

// ufs lists the 27 Brazilian federative units.
var ufs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true, "DF": true,
	"ES": true, "GO": true, "MA": true, "MT": true, "MS": true, "MG": true, "PA": true,
	"PB": true, "PR": true, "PE": true, "PI": true, "RJ": true, "RN": true, "RS": true,
	"RO": true, "RR": true, "SC": true, "SP": true, "SE": true, "TO": true,
}

// validate is the shared validator instance. validator caches struct metadata,
// so it is built once and reused by every payload.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("inscricao_id") instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "cnpj", func(fl validator.FieldLevel) bool {
		return brfmt.ValidCNPJ(fl.Field().String())
	})
	mustRegister(v, "cpf_cnpj", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return brfmt.ValidCPF(s) || brfmt.ValidCNPJ(s)
	})
	mustRegister(v, "cep", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(brfmt.OnlyDigits(s)) == brfmt.CEPLength && len(s) <= brfmt.CEPLength+1
	})
	mustRegister(v, "uf", func(fl validator.FieldLevel) bool {
		return ufs[strings.ToUpper(fl.Field().String())]
	})
	mustRegister(v, "cst_ibs_cbs", func(fl validator.FieldLevel) bool {
		return fiscal.ValidCode(fiscal.CSTIBSCBS, fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Struct validates s against its `validate` tags using the shared validator.
// Payload types call it from their Validate method.
func Struct(s any) error {
	return validate.Struct(s)
}

// Var validates a single value against tag, e.g. Var(cnpj, "cnpj").
func Var(field any, tag string) error {
	return validate.Var(field, tag)
}
